package utils

import (
	"log"
	"time"

	"github.com/vnkhanh/podcast-catalog-api/config"
	"github.com/vnkhanh/podcast-catalog-api/models"
)

// CleanupExpiredTokens xóa các phiên đăng nhập đã quá hạn.
// Token hết hạn đằng nào cũng rớt ở bước verify, đây chỉ là dọn rác DB.
func CleanupExpiredTokens() {
	db := config.DB

	result := db.Where("expires_at < ?", time.Now()).Delete(&models.AuthToken{})
	if result.Error != nil {
		log.Printf("Lỗi khi xóa auth token hết hạn: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã xóa %d auth token hết hạn", result.RowsAffected)
	}
}

// StartCleanupJob chạy cleanup job định kỳ
func StartCleanupJob() {
	// Chạy cleanup ngay lần đầu khi khởi động
	CleanupExpiredTokens()

	// Thiết lập ticker để chạy mỗi 6 giờ
	ticker := time.NewTicker(6 * time.Hour)

	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupExpiredTokens()
		}
	}()

	log.Println("Cleanup job đã được khởi động (chạy mỗi 6 giờ)")
}
