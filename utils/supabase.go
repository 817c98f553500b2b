package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// SupabaseUploader đẩy media lên Supabase Storage và trả về public URL.
// Thỏa interface services.MediaUploader.
type SupabaseUploader struct{}

func NewSupabaseUploader() *SupabaseUploader {
	return &SupabaseUploader{}
}

// Ảnh bìa / avatar: uploads/images/<uuid>.<ext>
func (u *SupabaseUploader) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	return uploadToSupabase(fileHeader, "images")
}

// File audio: uploads/audio/<uuid>.<ext>
func (u *SupabaseUploader) UploadAudio(fileHeader *multipart.FileHeader) (string, error) {
	return uploadToSupabase(fileHeader, "audio")
}

func uploadToSupabase(fileHeader *multipart.FileHeader, folder string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext) // Path dưới bucket uploads

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile("uploads", objectPath, &buf, options); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/uploads/%s", supabaseURL, objectPath)
	return publicURL, nil
}
