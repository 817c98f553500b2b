package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MediaUploader đẩy file lên kho media ngoài và trả về URL công khai.
// Upload là lệnh chặn có timeout; gọi trước khi ghi DB để lỗi upload
// không để lại bản ghi mồ côi.
type MediaUploader interface {
	UploadImage(file *multipart.FileHeader) (string, error)
	UploadAudio(file *multipart.FileHeader) (string, error)
}

const (
	maxImageSize = 5 << 20  // 5MB cho ảnh
	maxAudioSize = 20 << 20 // 20MB cho audio
)

var (
	imageExts = []string{".jpg", ".jpeg", ".png", ".webp"}
	audioExts = []string{".mp3", ".wav", ".m4a"}
)

func validateImageFile(file *multipart.FileHeader) error {
	return validateFile(file, imageExts, maxImageSize, "Ảnh")
}

func validateAudioFile(file *multipart.FileHeader) error {
	return validateFile(file, audioExts, maxAudioSize, "File audio")
}

func validateFile(file *multipart.FileHeader, allowed []string, maxSize int64, label string) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	ok := false
	for _, a := range allowed {
		if ext == a {
			ok = true
			break
		}
	}
	if !ok {
		return ErrValidation(fmt.Sprintf("%s không đúng định dạng (cho phép: %s)", label, strings.Join(allowed, ", ")))
	}
	if file.Size > maxSize {
		return ErrValidation(fmt.Sprintf("%s vượt quá dung lượng cho phép (%dMB)", label, maxSize>>20))
	}
	return nil
}
