package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/ictcert/cert_portal/configs"
)

// CloudinaryStorage holds the rendered certificates and the uploaded
// passport photos.
type CloudinaryStorage struct{}

func (CloudinaryStorage) UploadPDF(pdf []byte, publicID string) (string, error) {
	return upload(bytes.NewReader(pdf), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "cert_portal_certificates",
		ResourceType: "raw",
	})
}

// UploadPassport stores an applicant's passport photo and returns its URL.
func (CloudinaryStorage) UploadPassport(file io.Reader, matric string) (string, error) {
	return upload(file, uploader.UploadParams{
		PublicID:     fmt.Sprintf("passports/%s_%s", matric, uuid.New().String()),
		Folder:       "cert_portal_passports",
		ResourceType: "image",
	})
}

func upload(file io.Reader, params uploader.UploadParams) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
