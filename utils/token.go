package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

const tokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("token không hợp lệ hoặc đã bị thu hồi")

type TokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateToken phát hành một phiên đăng nhập mới cho user.
// JWT mang jti; DB chỉ giữ sha-256 của token, không giữ bản rõ.
// Một user có thể giữ nhiều token cùng lúc.
func GenerateToken(db *gorm.DB, user *models.User) (string, error) {
	jti := uuid.New()
	now := time.Now()

	claims := TokenClaims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	record := models.AuthToken{
		ID:        jti,
		UserID:    user.ID,
		TokenHash: hashToken(signed),
		ExpiresAt: now.Add(tokenTTL),
	}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}

	return signed, nil
}

// VerifyToken kiểm tra chữ ký + hạn, sau đó jti phải còn bản ghi trong DB
// và hash khớp. Token đã logout sẽ rớt ở bước tra DB.
func VerifyToken(db *gorm.DB, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("phương thức ký không hợp lệ")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var record models.AuthToken
	if err := db.First(&record, "id = ?", jti).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if record.TokenHash != hashToken(tokenString) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RevokeToken thu hồi đúng token được đưa vào, các phiên khác của cùng user
// không bị ảnh hưởng. Gọi lặp lại trên token đã thu hồi vẫn an toàn.
func RevokeToken(db *gorm.DB, tokenString string) error {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil {
		// Token không đọc được thì cũng không có gì để thu hồi
		return nil
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil
	}

	return db.Where("id = ? AND token_hash = ?", jti, hashToken(tokenString)).
		Delete(&models.AuthToken{}).Error
}
