package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/podcast-catalog-api/services"
)

// GET /api/episodes
func GetEpisodes(c *gin.Context) {
	svc := services.NewEpisodeService(getDB(c), uploader)
	episodes, err := svc.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": episodes})
}

// GET /api/episodes/:id
func GetEpisodeDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewEpisodeService(getDB(c), uploader)
	episode, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"episode": episode})
}

// POST /api/episodes (multipart: podcast_id, title, description, duration, audio_file)
func CreateEpisode(c *gin.Context) {
	podcastID, err := uuid.Parse(c.PostForm("podcast_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "podcast_id bắt buộc và phải hợp lệ", "kind": services.ErrKindValidation})
		return
	}

	in := services.CreateEpisodeInput{
		PodcastID:   podcastID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if durationStr, ok := c.GetPostForm("duration"); ok {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "duration phải là số giây không âm", "kind": services.ErrKindValidation})
			return
		}
		in.Duration = &duration
	}
	if file, err := c.FormFile("audio_file"); err == nil {
		in.Audio = file
	}

	svc := services.NewEpisodeService(getDB(c), uploader)
	episode, err := svc.Create(currentActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo tập podcast thành công",
		"episode": episode,
	})
}

// PUT /api/episodes/:id
func UpdateEpisode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in services.UpdateEpisodeInput
	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		in.Description = &description
	}
	if durationStr, ok := c.GetPostForm("duration"); ok {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "duration phải là số giây không âm", "kind": services.ErrKindValidation})
			return
		}
		in.Duration = &duration
	}
	if file, err := c.FormFile("audio_file"); err == nil {
		in.Audio = file
	}

	svc := services.NewEpisodeService(getDB(c), uploader)
	episode, err := svc.Update(currentActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật tập podcast thành công",
		"episode": episode,
	})
}

// DELETE /api/episodes/:id
func DeleteEpisode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewEpisodeService(getDB(c), uploader)
	if err := svc.Delete(currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa tập podcast thành công"})
}
