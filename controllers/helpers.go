package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
	"github.com/vnkhanh/podcast-catalog-api/services"
	"github.com/vnkhanh/podcast-catalog-api/utils"
)

// Uploader dùng chung cho các controller ghi media
var uploader services.MediaUploader = utils.NewSupabaseUploader()

func getDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

// currentActor đọc danh tính do AuthMiddleware gắn vào context.
// Không có thì là khách vãng lai (nil), service tự quyết allow/deny.
func currentActor(c *gin.Context) *services.Actor {
	idStr := c.GetString("user_id")
	if idStr == "" {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &services.Actor{ID: id, Role: models.UserRole(c.GetString("role"))}
}

var errStatus = map[services.ErrorKind]int{
	services.ErrKindValidation:      http.StatusUnprocessableEntity,
	services.ErrKindUnauthenticated: http.StatusUnauthorized,
	services.ErrKindForbidden:       http.StatusForbidden,
	services.ErrKindNotFound:        http.StatusNotFound,
	services.ErrKindConflict:        http.StatusConflict,
	services.ErrKindUploadFailed:    http.StatusBadGateway,
	services.ErrKindInternal:        http.StatusInternalServerError,
}

func respondError(c *gin.Context, err error) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		status, ok := errStatus[appErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi hệ thống", "kind": services.ErrKindInternal})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ", "kind": services.ErrKindValidation})
		return uuid.Nil, false
	}
	return id, true
}
