package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

var imageExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true,
}

// saveUploadedMedia validates and stores a multipart file under dir,
// returning the relative path persisted on the record.
func saveUploadedMedia(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > maxUploadSize {
		return "", errors.New("file exceeds the 10MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] && !videoExtensions[ext] {
		return "", errors.New("invalid file type. Only JPEG, PNG, WebP, MP4, and MOV files are allowed")
	}

	filename := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filepath.Base(file.Filename), ext), uuid.NewString(), ext)
	dest := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// saveUploadedImage rejects anything that is not an image.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", errors.New("invalid file type. Only JPEG, PNG and WebP images are allowed")
	}
	return saveUploadedMedia(c, file, dir)
}
