package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// FileStorage defines the contract for the document/image storage provider.
// Incapacidad supports, CVs and avatars all go through it.
type FileStorage interface {
	// Upload stores the file from r and returns the secure URL.
	// folder is the logical folder in storage (e.g. "incapacidades").
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes a previously uploaded file using its URL.
	Delete(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage builds the Cloudinary-backed FileStorage. Credentials
// come from CLOUDINARY_URL (see Cloudinary Go SDK docs); baseFolder prefixes
// every upload so environments don't collide in a shared account.
func NewCloudinaryStorage(baseFolder string) (FileStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: baseFolder}, nil
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".tiff": true, ".gif": true, ".webp": true,
}

func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if s.folder != "" {
		folder = s.folder + "/" + folder
	}

	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       fmt.Sprintf("%d-%s", time.Now().UnixNano(), strings.TrimSuffix(fileName, filepath.Ext(fileName))),
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if imageExtensions[ext] {
		params.Format = "webp"
		params.Transformation = "q_auto"
	} else {
		// PDFs and office documents go up untouched.
		params.ResourceType = "raw"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID, resourceType := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	params := uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
		Invalidate:   api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID pulls the public ID and resource type out of a Cloudinary
// delivery URL. Path is roughly /<cloud>/<type>/upload/v<version>/<folder>/<file>.<ext>.
func extractPublicID(fileURL string) (string, string) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex < 1 || uploadIndex+1 >= len(parts) {
		return "", ""
	}

	resourceType := parts[uploadIndex-1]

	rest := parts[uploadIndex+1:]
	if len(rest) > 0 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:] // skip version
	}

	if len(rest) == 0 {
		return "", resourceType
	}

	publicID := strings.Join(rest, "/")
	if resourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))
	}

	return publicID, resourceType
}
