package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

func setupTokenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuthToken{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Khanh",
		LastName:  "Vu",
		Email:     string(role) + "@example.com",
		Password:  "hashed",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestGenerateVerifyToken(t *testing.T) {
	db := setupTokenTestDB(t)
	user := seedUser(t, db, models.RoleHost)

	token, err := GenerateToken(db, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(db, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "host", claims.Role)

	// DB chỉ giữ hash, không giữ bản rõ
	var record models.AuthToken
	require.NoError(t, db.First(&record, "user_id = ?", user.ID).Error)
	assert.NotEqual(t, token, record.TokenHash)
	assert.Len(t, record.TokenHash, 64)
}

func TestRevokeToken_ChiThuHoiDungPhien(t *testing.T) {
	db := setupTokenTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	first, err := GenerateToken(db, user)
	require.NoError(t, err)
	second, err := GenerateToken(db, user)
	require.NoError(t, err)

	require.NoError(t, RevokeToken(db, first))

	_, err = VerifyToken(db, first)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Phiên còn lại của cùng user không bị ảnh hưởng
	_, err = VerifyToken(db, second)
	assert.NoError(t, err)
}

func TestRevokeToken_LapLaiVanAnToan(t *testing.T) {
	db := setupTokenTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	token, err := GenerateToken(db, user)
	require.NoError(t, err)

	require.NoError(t, RevokeToken(db, token))
	require.NoError(t, RevokeToken(db, token))

	// Token rác cũng không lỗi
	require.NoError(t, RevokeToken(db, "not-a-jwt"))
}

func TestVerifyToken_TuChoiTokenXau(t *testing.T) {
	db := setupTokenTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	t.Run("chuỗi rác", func(t *testing.T) {
		_, err := VerifyToken(db, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ký bằng secret khác", func(t *testing.T) {
		token, err := GenerateToken(db, user)
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "secret-khac")
		_, err = VerifyToken(db, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
