package services

import (
	"errors"
	"log"
	"math"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

type EpisodeService struct {
	db       *gorm.DB
	uploader MediaUploader

	// tách ra để test thay thế được
	mp3Duration func(url string) (float64, error)
}

func NewEpisodeService(db *gorm.DB, uploader MediaUploader) *EpisodeService {
	return &EpisodeService{
		db:          db,
		uploader:    uploader,
		mp3Duration: GetMP3DurationFromURL,
	}
}

// GET /api/episodes
func (s *EpisodeService) List() ([]models.Episode, error) {
	var episodes []models.Episode
	if err := s.db.
		Preload("Podcast").
		Order("created_at DESC").
		Find(&episodes).Error; err != nil {
		return nil, ErrInternal("Không thể lấy danh sách tập", err)
	}
	return episodes, nil
}

// GET /api/episodes/:id
func (s *EpisodeService) Get(id uuid.UUID) (*models.Episode, error) {
	var episode models.Episode
	if err := s.db.Preload("Podcast").First(&episode, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy tập podcast")
		}
		return nil, ErrInternal("Không thể lấy tập podcast", err)
	}
	return &episode, nil
}

type CreateEpisodeInput struct {
	PodcastID   uuid.UUID
	Title       string
	Description string
	Duration    *int
	Audio       *multipart.FileHeader
}

func (s *EpisodeService) Create(actor *Actor, in CreateEpisodeInput) (*models.Episode, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrValidation("Tiêu đề tập bắt buộc")
	}
	if in.Audio == nil {
		return nil, ErrValidation("File audio bắt buộc")
	}
	if err := validateAudioFile(in.Audio); err != nil {
		return nil, err
	}

	// podcast_id phải trỏ đến podcast có thật
	var podcast models.Podcast
	if err := s.db.First(&podcast, "id = ?", in.PodcastID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation("podcast_id không tồn tại")
		}
		return nil, ErrInternal("Không thể kiểm tra podcast", err)
	}

	if err := Decide(actor, ActionCreate, nil); err != nil {
		return nil, err
	}

	audioURL, err := s.uploader.UploadAudio(in.Audio)
	if err != nil {
		return nil, ErrUploadFailed("Không thể upload file audio", err)
	}

	// Client không gửi duration thì tự tính từ file mp3 vừa upload,
	// tính không được thì để null
	duration := in.Duration
	if duration == nil {
		if sec, derr := s.mp3Duration(audioURL); derr == nil {
			v := int(math.Round(sec))
			duration = &v
		} else {
			log.Printf("không tính được thời lượng audio %s: %v", audioURL, derr)
		}
	}

	episode := models.Episode{
		PodcastID:   podcast.ID,
		Title:       title,
		Description: in.Description,
		AudioURL:    audioURL,
		Duration:    duration,
	}
	if err := s.db.Create(&episode).Error; err != nil {
		log.Printf("tập không ghi được DB, file mồ côi: audio=%s err=%v", audioURL, err)
		return nil, ErrInternal("Lỗi khi tạo tập podcast", err)
	}

	episode.Podcast = podcast
	return &episode, nil
}

type UpdateEpisodeInput struct {
	Title       *string
	Description *string
	Duration    *int
	Audio       *multipart.FileHeader
}

func (s *EpisodeService) Update(actor *Actor, id uuid.UUID, in UpdateEpisodeInput) (*models.Episode, error) {
	var episode models.Episode
	if err := s.db.Preload("Podcast").First(&episode, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Không tìm thấy tập podcast")
		}
		return nil, ErrInternal("Không thể lấy tập podcast", err)
	}

	var title string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrValidation("Tiêu đề tập không được trống")
		}
	}
	if in.Audio != nil {
		if err := validateAudioFile(in.Audio); err != nil {
			return nil, err
		}
	}

	// Quyền sở hữu đi qua podcast cha
	if err := Decide(actor, ActionUpdate, &episode); err != nil {
		return nil, err
	}

	if in.Audio != nil {
		audioURL, err := s.uploader.UploadAudio(in.Audio)
		if err != nil {
			return nil, ErrUploadFailed("Không thể upload file audio", err)
		}
		episode.AudioURL = audioURL
	}
	if in.Title != nil {
		episode.Title = title
	}
	if in.Description != nil {
		episode.Description = *in.Description
	}
	if in.Duration != nil {
		episode.Duration = in.Duration
	}

	if err := s.db.Save(&episode).Error; err != nil {
		return nil, ErrInternal("Cập nhật tập podcast thất bại", err)
	}
	return &episode, nil
}

func (s *EpisodeService) Delete(actor *Actor, id uuid.UUID) error {
	var episode models.Episode
	if err := s.db.Preload("Podcast").First(&episode, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("Không tìm thấy tập podcast")
		}
		return ErrInternal("Không thể lấy tập podcast", err)
	}

	if err := Decide(actor, ActionDelete, &episode); err != nil {
		return err
	}

	if err := s.db.Delete(&episode).Error; err != nil {
		return ErrInternal("Xóa tập podcast thất bại", err)
	}
	return nil
}
