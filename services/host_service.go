package services

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

type HostService struct {
	db       *gorm.DB
	uploader MediaUploader
}

func NewHostService(db *gorm.DB, uploader MediaUploader) *HostService {
	return &HostService{db: db, uploader: uploader}
}

// GET /api/hosts
func (s *HostService) List() ([]models.Host, error) {
	var hosts []models.Host
	if err := s.db.Order("created_at DESC").Find(&hosts).Error; err != nil {
		return nil, ErrInternal("Không thể lấy danh sách host", err)
	}
	return hosts, nil
}

// GET /api/hosts/:id
func (s *HostService) Get(id uuid.UUID) (*models.Host, error) {
	var host models.Host
	if err := s.db.First(&host, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy host")
		}
		return nil, ErrInternal("Không thể lấy host", err)
	}
	return &host, nil
}

type CreateHostInput struct {
	Name   string
	Bio    string
	Avatar *multipart.FileHeader
}

func (s *HostService) Create(actor *Actor, in CreateHostInput) (*models.Host, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation("Tên host bắt buộc")
	}
	if len(name) > 255 {
		return nil, ErrValidation("Tên host tối đa 255 ký tự")
	}
	if in.Avatar != nil {
		if err := validateImageFile(in.Avatar); err != nil {
			return nil, err
		}
	}

	if err := Decide(actor, ActionCreate, nil); err != nil {
		return nil, err
	}

	avatarURL := ""
	if in.Avatar != nil {
		url, err := s.uploader.UploadImage(in.Avatar)
		if err != nil {
			return nil, ErrUploadFailed("Không thể upload avatar", err)
		}
		avatarURL = url
	}

	host := models.Host{
		UserID: actor.ID,
		Name:   name,
		Bio:    in.Bio,
		Avatar: avatarURL,
	}
	if err := s.db.Create(&host).Error; err != nil {
		return nil, ErrInternal("Lỗi khi tạo host", err)
	}
	return &host, nil
}

type UpdateHostInput struct {
	Name   *string
	Bio    *string
	Avatar *multipart.FileHeader
}

func (s *HostService) Update(actor *Actor, id uuid.UUID, in UpdateHostInput) (*models.Host, error) {
	var host models.Host
	if err := s.db.First(&host, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy host")
		}
		return nil, ErrInternal("Không thể lấy host", err)
	}

	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrValidation("Tên host không được trống")
		}
		if len(name) > 255 {
			return nil, ErrValidation("Tên host tối đa 255 ký tự")
		}
	}
	if in.Avatar != nil {
		if err := validateImageFile(in.Avatar); err != nil {
			return nil, err
		}
	}

	if err := Decide(actor, ActionUpdate, &host); err != nil {
		return nil, err
	}

	if in.Avatar != nil {
		url, err := s.uploader.UploadImage(in.Avatar)
		if err != nil {
			return nil, ErrUploadFailed("Không thể upload avatar", err)
		}
		host.Avatar = url
	}
	if in.Name != nil {
		host.Name = name
	}
	if in.Bio != nil {
		host.Bio = *in.Bio
	}

	if err := s.db.Save(&host).Error; err != nil {
		return nil, ErrInternal("Cập nhật host thất bại", err)
	}
	return &host, nil
}

func (s *HostService) Delete(actor *Actor, id uuid.UUID) error {
	var host models.Host
	if err := s.db.First(&host, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("Không tìm thấy host")
		}
		return ErrInternal("Không thể lấy host", err)
	}

	if err := Decide(actor, ActionDelete, &host); err != nil {
		return err
	}

	if err := s.db.Delete(&host).Error; err != nil {
		return ErrInternal("Xóa host thất bại", err)
	}
	return nil
}
