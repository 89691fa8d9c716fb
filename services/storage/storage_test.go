package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	res, _ := args.Get(0).(*uploader.UploadResult)
	return res, args.Error(1)
}

func (m *mockUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*uploader.DestroyResult)
	return res, args.Error(1)
}

func TestUploadSampleImage_ReturnsSecureURL(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(p uploader.UploadParams) bool {
		return p.Folder == sampleFolder && strings.HasPrefix(p.PublicID, "o-1_blood_")
	})).Return(&uploader.UploadResult{SecureURL: "https://res.cloudinary.com/x/o-1_blood.jpg"}, nil)

	store := &CloudinaryImageStore{upload: up, folder: sampleFolder}
	url, err := store.UploadSampleImage(context.Background(), "o-1", "blood", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/x/o-1_blood.jpg", url)
	up.AssertExpectations(t)
}

func TestUploadSampleImage_SurfacesAPIError(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}, nil)

	store := &CloudinaryImageStore{upload: up, folder: sampleFolder}
	_, err := store.UploadSampleImage(context.Background(), "o-1", "urine", strings.NewReader("x"))
	assert.ErrorContains(t, err, "Invalid image file")

	up2 := &mockUploader{}
	up2.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	store.upload = up2
	_, err = store.UploadSampleImage(context.Background(), "o-1", "urine", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewCloudinaryImageStore_RequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryImageStore("", "key", "secret")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = DisabledImageStore{}.UploadSampleImage(context.Background(), "o", "blood", nil)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
