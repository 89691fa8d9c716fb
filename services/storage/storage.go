package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const sampleFolder = "home-collection/samples"

// CloudinaryImageStore implements ImageStore on Cloudinary.
type CloudinaryImageStore struct {
	upload uploadAPI
	folder string
}

// NewCloudinaryImageStore builds a store from account credentials.
func NewCloudinaryImageStore(cloudName, apiKey, apiSecret string) (*CloudinaryImageStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrStorageDisabled
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryImageStore{upload: &cld.Upload, folder: sampleFolder}, nil
}

func (s *CloudinaryImageStore) UploadSampleImage(ctx context.Context, orderID, sampleType string, file io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       fmt.Sprintf("%s_%s_%d", orderID, sampleType, time.Now().UnixMilli()),
		Tags:           api.CldAPIArray{"sample", sampleType},
		ResourceType:   "image",
		UniqueFilename: api.Bool(false),
	}
	result, err := s.upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload sample image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload sample image: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL for %s", params.PublicID)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryImageStore) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}

// DisabledImageStore rejects uploads when Cloudinary credentials are absent.
type DisabledImageStore struct{}

func (DisabledImageStore) UploadSampleImage(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledImageStore) DeleteImage(context.Context, string) error { return ErrStorageDisabled }
