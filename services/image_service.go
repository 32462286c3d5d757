package services

import (
	"fmt"
	"mime/multipart"

	"github.com/amara-couture/atelier-api/utils"
)

// DesignImageService handles the design reference images attached to
// bespoke orders: upload, presigned retrieval, and deletion.
type DesignImageService interface {
	// UploadImage validates and uploads an image file, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for accessing an uploaded image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// S3DesignImageService implements DesignImageService using AWS S3 for storage
type S3DesignImageService struct {
	s3Service S3Interface
}

var designImageServiceInstance DesignImageService

// InitDesignImageService initializes the design image service with S3 backend
func InitDesignImageService(s3Service S3Interface) DesignImageService {
	designImageServiceInstance = &S3DesignImageService{
		s3Service: s3Service,
	}
	return designImageServiceInstance
}

// GetDesignImageService returns the initialized design image service instance
func GetDesignImageService() DesignImageService {
	return designImageServiceInstance
}

// SetDesignImageService sets the design image service instance (primarily for testing)
func SetDesignImageService(service DesignImageService) {
	designImageServiceInstance = service
}

// UploadImage validates and uploads an image file to S3
func (s *S3DesignImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing an image
func (s *S3DesignImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3DesignImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
