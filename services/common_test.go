package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

// setupTestDB tạo SQLite in-memory, bật foreign_keys để FK cascade chạy như Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err, "không mở được test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Host{},
		&models.Podcast{},
		&models.Episode{},
	)
	require.NoError(t, err, "migrate thất bại")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		Password:  "hashed",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func actorFor(user *models.User) *Actor {
	return &Actor{ID: user.ID, Role: user.Role}
}

func testFile(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

// fakeUploader thay Supabase trong test, đếm số lần gọi để kiểm tra
// thứ tự validate -> authorize -> upload
type fakeUploader struct {
	uploads int
	err     error
}

func (f *fakeUploader) UploadImage(file *multipart.FileHeader) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return "https://media.example.com/images/" + file.Filename, nil
}

func (f *fakeUploader) UploadAudio(file *multipart.FileHeader) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return "https://media.example.com/audio/" + file.Filename, nil
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()

	require.Error(t, err)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr), "muốn *AppError, nhận %T", err)
	require.Equal(t, kind, appErr.Kind)
}
