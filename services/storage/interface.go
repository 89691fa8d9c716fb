package storage

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrStorageDisabled is returned when no image backend is configured.
var ErrStorageDisabled = errors.New("image storage is not configured")

// ImageStore keeps sample photos taken by collectors.
type ImageStore interface {
	// UploadSampleImage stores the image and returns a URL to record on the booking.
	UploadSampleImage(ctx context.Context, orderID, sampleType string, file io.Reader) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// uploadAPI is the subset of cloudinary's uploader.API in use.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}
