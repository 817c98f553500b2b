package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/podcast-catalog-api/services"
)

// GET /api/podcasts
func GetPodcasts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	svc := services.NewPodcastService(getDB(c), uploader)
	result, err := svc.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Items,
		"pagination": gin.H{
			"page":  result.Page,
			"limit": result.Limit,
			"total": result.Total,
			"pages": result.Pages,
		},
	})
}

// GET /api/podcasts/:id
func GetPodcastDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPodcastService(getDB(c), uploader)
	podcast, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"podcast": podcast})
}

// POST /api/podcasts (multipart: title, description, image, audio)
func CreatePodcast(c *gin.Context) {
	in := services.CreatePodcastInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if file, err := c.FormFile("image"); err == nil {
		in.Image = file
	}
	if file, err := c.FormFile("audio"); err == nil {
		in.Audio = file
	}

	svc := services.NewPodcastService(getDB(c), uploader)
	podcast, err := svc.Create(currentActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo podcast thành công",
		"podcast": podcast,
	})
}

// PUT /api/podcasts/:id (multipart, chỉ các trường được gửi mới bị sửa)
func UpdatePodcast(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in services.UpdatePodcastInput
	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		in.Description = &description
	}
	if file, err := c.FormFile("image"); err == nil {
		in.Image = file
	}
	if file, err := c.FormFile("audio"); err == nil {
		in.Audio = file
	}

	svc := services.NewPodcastService(getDB(c), uploader)
	podcast, err := svc.Update(currentActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật podcast thành công",
		"podcast": podcast,
	})
}

// DELETE /api/podcasts/:id
func DeletePodcast(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPodcastService(getDB(c), uploader)
	if err := svc.Delete(currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa podcast thành công"})
}
