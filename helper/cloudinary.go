package helper

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cinema_factory/config"
	"cinema_factory/model"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type UploadResult struct {
	URL      string
	PublicID string
}

// CloudinaryStore is the binary object store behind every media section.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func InitCloudinary(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, folder string, resource model.ResourceType) (UploadResult, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: string(resource),
	})
	if err != nil {
		return UploadResult{}, err
	}
	if res.Error.Message != "" {
		return UploadResult{}, errors.New(res.Error.Message)
	}
	return UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Delete treats an object that is already gone as deleted.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, resource model.ResourceType) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(resource),
	})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}

// ExtractPublicID recovers the public id from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/<resource>/upload/[v<version>/]<folder>/<id>.<format>
func ExtractPublicID(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && len(parts[0]) > 1 && parts[0][0] == 'v' && isDigits(parts[0][1:]) {
		parts = parts[1:]
	}
	publicID := strings.Join(parts, "/")
	return strings.TrimSuffix(publicID, filepath.Ext(publicID))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
