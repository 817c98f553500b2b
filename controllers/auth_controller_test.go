package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
	"github.com/vnkhanh/podcast-catalog-api/routes"
	"github.com/vnkhanh/podcast-catalog-api/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Host{},
		&models.Podcast{},
		&models.Episode{},
	))

	return routes.SetupRouter(gin.New(), db), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email string) gin.H {
	return gin.H{
		"first_name": "Amina",
		"last_name":  "Diallo",
		"email":      email,
		"password":   "matkhau123",
	}
}

func TestRegister(t *testing.T) {
	r, db := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerBody("amina@example.com"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Token phát hành lúc đăng ký dùng được ngay
	claims, err := utils.VerifyToken(db, token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)

	t.Run("email trùng trả 409 và không tạo thêm bản ghi", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerBody("amina@example.com"), "")
		assert.Equal(t, http.StatusConflict, w.Code)

		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("thiếu trường bắt buộc trả 422", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"email": "x@example.com"}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLoginLogout(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerBody("amina@example.com"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	login := func(t *testing.T) string {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "amina@example.com",
			"password": "matkhau123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		token, _ := decodeBody(t, w)["token"].(string)
		require.NotEmpty(t, token)
		return token
	}

	t.Run("sai mật khẩu trả 401", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "amina@example.com",
			"password": "sai-roi",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token login dùng được cho /me", func(t *testing.T) {
		token := login(t)
		w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logout chỉ thu hồi phiên hiện tại", func(t *testing.T) {
		first := login(t)
		second := login(t)

		w := doJSON(t, r, http.MethodPost, "/api/auth/logout", nil, first)
		require.Equal(t, http.StatusOK, w.Code)

		// Token vừa logout hết dùng được
		w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, first)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// Phiên khác của cùng user vẫn sống
		w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, second)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCatalogAccessQuaHTTP(t *testing.T) {
	r, db := setupRouter(t)

	t.Run("đọc catalog không cần token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/podcasts", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/episodes", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ghi catalog không token trả 401", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/podcasts", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("role user bị chặn ghi từ middleware", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerBody("docgia@example.com"), "")
		require.Equal(t, http.StatusCreated, w.Code)
		token, _ := decodeBody(t, w)["token"].(string)

		w = doJSON(t, r, http.MethodPost, "/api/podcasts", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin tạo tài khoản host qua /api/admin/users", func(t *testing.T) {
		admin := &models.User{
			FirstName: "Quan",
			LastName:  "Tri",
			Email:     "admin@example.com",
			Password:  "hashed",
			Role:      models.RoleAdmin,
		}
		require.NoError(t, db.Create(admin).Error)
		adminToken, err := utils.GenerateToken(db, admin)
		require.NoError(t, err)

		w := doJSON(t, r, http.MethodPost, "/api/admin/users", gin.H{
			"first_name": "Host",
			"last_name":  "Moi",
			"email":      "hostmoi@example.com",
			"password":   "matkhau123",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created models.User
		require.NoError(t, db.First(&created, "email = ?", "hostmoi@example.com").Error)
		assert.Equal(t, models.RoleHost, created.Role)
	})

	t.Run("host thường không vào được /api/admin/users", func(t *testing.T) {
		host := &models.User{
			FirstName: "Chi",
			LastName:  "Host",
			Email:     "chihost@example.com",
			Password:  "hashed",
			Role:      models.RoleHost,
		}
		require.NoError(t, db.Create(host).Error)
		hostToken, err := utils.GenerateToken(db, host)
		require.NoError(t, err)

		w := doJSON(t, r, http.MethodPost, "/api/admin/users", registerBody("khac@example.com"), hostToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
