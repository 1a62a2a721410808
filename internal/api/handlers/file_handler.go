package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wheelio/internal/models"
	"wheelio/internal/s3"
)

type FileHandler struct {
	DB      *mongo.Database
	Storage *s3.Storage
	Log     *zap.Logger
}

// UploadFile stores the multipart "file" field in S3 under a generated id
// and records the metadata document. Callers keep the id as an opaque
// reference; the file service knows nothing about other entities.
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A multipart 'file' field is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileID := fmt.Sprintf("FILE-%s", uuid.New().String()[:8])
	if err := h.Storage.Upload(c.Request.Context(), src, fileID, contentType); err != nil {
		h.Log.Error("upload to blob storage failed", zap.String("fileID", fileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	blob := models.FileBlob{
		FileID:      fileID,
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		CreatedAt:   time.Now(),
	}
	if _, err := h.DB.Collection("files").InsertOne(context.Background(), blob); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record file metadata"})
		return
	}

	c.JSON(http.StatusCreated, blob)
}

// DownloadFile streams the raw bytes with the original content type and an
// attachment disposition carrying the original filename.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	fileID := c.Param("id")

	var blob models.FileBlob
	err := h.DB.Collection("files").FindOne(context.Background(), bson.M{"fileID": fileID}).Decode(&blob)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve file metadata"})
		}
		return
	}

	body, err := h.Storage.Download(c.Request.Context(), fileID)
	if err != nil {
		h.Log.Error("fetch from blob storage failed", zap.String("fileID", fileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve file"})
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Name))
	c.Header("Content-Type", blob.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.Log.Warn("streaming file to client failed", zap.String("fileID", fileID), zap.Error(err))
	}
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID := c.Param("id")

	result, err := h.DB.Collection("files").DeleteOne(context.Background(), bson.M{"fileID": fileID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file metadata"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := h.Storage.Delete(c.Request.Context(), fileID); err != nil {
		h.Log.Warn("failed to delete blob after metadata removal", zap.String("fileID", fileID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
