package services

import (
	"errors"
	"log"
	"math"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

// Mỗi thao tác ghi chạy theo trình tự cố định:
// validate -> authorize -> upload -> ghi DB -> trả kết quả.
// Upload đứng trước ghi DB nên upload lỗi thì không có bản ghi nào được tạo.
type PodcastService struct {
	db       *gorm.DB
	uploader MediaUploader
}

func NewPodcastService(db *gorm.DB, uploader MediaUploader) *PodcastService {
	return &PodcastService{db: db, uploader: uploader}
}

const defaultPageSize = 10

type PodcastPage struct {
	Items []models.Podcast `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Pages int              `json:"pages"`
}

func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id, first_name, last_name, email, role")
}

// GET /api/podcasts
func (s *PodcastService) List(page, limit int) (*PodcastPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	var total int64
	if err := s.db.Model(&models.Podcast{}).Count(&total).Error; err != nil {
		return nil, ErrInternal("Không thể đếm tổng số podcast", err)
	}

	var podcasts []models.Podcast
	if err := s.db.
		Preload("Host", selectUserSummary).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&podcasts).Error; err != nil {
		return nil, ErrInternal("Không thể lấy danh sách podcast", err)
	}

	return &PodcastPage{
		Items: podcasts,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GET /api/podcasts/:id
func (s *PodcastService) Get(id uuid.UUID) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := s.db.
		Preload("Host", selectUserSummary).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&podcast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy podcast")
		}
		return nil, ErrInternal("Không thể lấy podcast", err)
	}
	return &podcast, nil
}

type CreatePodcastInput struct {
	Title       string
	Description string
	Image       *multipart.FileHeader
	Audio       *multipart.FileHeader
}

func (s *PodcastService) Create(actor *Actor, in CreatePodcastInput) (*models.Podcast, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrValidation("Tiêu đề podcast bắt buộc")
	}
	if len(title) > 255 {
		return nil, ErrValidation("Tiêu đề podcast tối đa 255 ký tự")
	}
	if in.Image == nil {
		return nil, ErrValidation("Ảnh bìa bắt buộc")
	}
	if in.Audio == nil {
		return nil, ErrValidation("File audio bắt buộc")
	}
	if err := validateImageFile(in.Image); err != nil {
		return nil, err
	}
	if err := validateAudioFile(in.Audio); err != nil {
		return nil, err
	}

	if err := Decide(actor, ActionCreate, nil); err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.UploadImage(in.Image)
	if err != nil {
		return nil, ErrUploadFailed("Không thể upload ảnh bìa", err)
	}
	audioURL, err := s.uploader.UploadAudio(in.Audio)
	if err != nil {
		return nil, ErrUploadFailed("Không thể upload file audio", err)
	}

	podcast := models.Podcast{
		Title:       title,
		Slug:        slug.Make(title),
		Description: in.Description,
		ImageURL:    imageURL,
		AudioURL:    audioURL,
		HostID:      actor.ID,
	}
	if err := s.db.Create(&podcast).Error; err != nil {
		// File đã lên kho media nhưng bản ghi không tạo được: chấp nhận
		// file mồ côi, chỉ ghi log, không retry
		log.Printf("podcast không ghi được DB, file mồ côi: image=%s audio=%s err=%v", imageURL, audioURL, err)
		return nil, ErrInternal("Lỗi khi tạo podcast", err)
	}

	return &podcast, nil
}

type UpdatePodcastInput struct {
	Title       *string
	Description *string
	Image       *multipart.FileHeader
	Audio       *multipart.FileHeader
}

func (s *PodcastService) Update(actor *Actor, id uuid.UUID, in UpdatePodcastInput) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := s.db.First(&podcast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy podcast")
		}
		return nil, ErrInternal("Không thể lấy podcast", err)
	}

	var title string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrValidation("Tiêu đề podcast không được trống")
		}
		if len(title) > 255 {
			return nil, ErrValidation("Tiêu đề podcast tối đa 255 ký tự")
		}
	}
	if in.Image != nil {
		if err := validateImageFile(in.Image); err != nil {
			return nil, err
		}
	}
	if in.Audio != nil {
		if err := validateAudioFile(in.Audio); err != nil {
			return nil, err
		}
	}

	// So quyền trên host_id hiện tại của bản ghi, không phải payload
	if err := Decide(actor, ActionUpdate, &podcast); err != nil {
		return nil, err
	}

	if in.Image != nil {
		imageURL, err := s.uploader.UploadImage(in.Image)
		if err != nil {
			return nil, ErrUploadFailed("Không thể upload ảnh bìa", err)
		}
		podcast.ImageURL = imageURL
	}
	if in.Audio != nil {
		audioURL, err := s.uploader.UploadAudio(in.Audio)
		if err != nil {
			return nil, ErrUploadFailed("Không thể upload file audio", err)
		}
		podcast.AudioURL = audioURL
	}
	if in.Title != nil {
		podcast.Title = title
		podcast.Slug = slug.Make(title)
	}
	if in.Description != nil {
		podcast.Description = *in.Description
	}

	if err := s.db.Save(&podcast).Error; err != nil {
		return nil, ErrInternal("Cập nhật podcast thất bại", err)
	}

	var updated models.Podcast
	if err := s.db.Preload("Host", selectUserSummary).First(&updated, "id = ?", id).Error; err != nil {
		return nil, ErrInternal("Không thể tải lại dữ liệu sau khi cập nhật", err)
	}
	return &updated, nil
}

func (s *PodcastService) Delete(actor *Actor, id uuid.UUID) error {
	var podcast models.Podcast
	if err := s.db.First(&podcast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("Không tìm thấy podcast")
		}
		return ErrInternal("Không thể lấy podcast", err)
	}

	if err := Decide(actor, ActionDelete, &podcast); err != nil {
		return err
	}

	// Các tập thuộc podcast bị xóa theo nhờ FK cascade, service không tự xóa
	if err := s.db.Delete(&podcast).Error; err != nil {
		return ErrInternal("Xóa podcast thất bại", err)
	}
	return nil
}
