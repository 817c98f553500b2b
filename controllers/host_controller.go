package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/podcast-catalog-api/services"
)

// GET /api/hosts
func GetHosts(c *gin.Context) {
	svc := services.NewHostService(getDB(c), uploader)
	hosts, err := svc.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hosts})
}

// GET /api/hosts/:id
func GetHostDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewHostService(getDB(c), uploader)
	host, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"host": host})
}

// POST /api/hosts (multipart: name, bio, avatar)
func CreateHost(c *gin.Context) {
	in := services.CreateHostInput{
		Name: c.PostForm("name"),
		Bio:  c.PostForm("bio"),
	}
	if file, err := c.FormFile("avatar"); err == nil {
		in.Avatar = file
	}

	svc := services.NewHostService(getDB(c), uploader)
	host, err := svc.Create(currentActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo host thành công",
		"host":    host,
	})
}

// PUT /api/hosts/:id
func UpdateHost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in services.UpdateHostInput
	if name, ok := c.GetPostForm("name"); ok {
		in.Name = &name
	}
	if bio, ok := c.GetPostForm("bio"); ok {
		in.Bio = &bio
	}
	if file, err := c.FormFile("avatar"); err == nil {
		in.Avatar = file
	}

	svc := services.NewHostService(getDB(c), uploader)
	host, err := svc.Update(currentActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật host thành công",
		"host":    host,
	})
}

// DELETE /api/hosts/:id
func DeleteHost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewHostService(getDB(c), uploader)
	if err := svc.Delete(currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa host thành công"})
}
