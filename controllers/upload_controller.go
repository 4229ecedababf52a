package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/storage"
)

const presignExpiry = 10 * time.Minute

type UploadController struct {
	presigner *storage.Presigner
}

func NewUploadController(presigner *storage.Presigner) *UploadController {
	return &UploadController{presigner: presigner}
}

type presignRequest struct {
	Folder      string `json:"folder" binding:"required,oneof=products avatars chat"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// Presign issues a short-lived S3 upload URL; the client PUTs the file
// directly and stores the returned public URL.
func (uc *UploadController) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	uploadURL, key, publicURL, err := uc.presigner.PresignUpload(c.Request.Context(), req.Folder, req.Filename, req.ContentType, presignExpiry)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"key":       key,
		"publicUrl": publicURL,
	})
}
