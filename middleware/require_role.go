package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles chặn sớm các role không bao giờ được ghi.
// Phải đứng sau AuthMiddleware; kiểm tra sở hữu chi tiết nằm ở tầng service.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được vai trò người dùng", "kind": "unauthenticated"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi xử lý vai trò người dùng", "kind": "internal_error"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền truy cập tài nguyên này", "kind": "forbidden"})
		c.Abort()
	}
}
