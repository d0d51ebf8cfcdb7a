package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gianghaison/gianghaison.me/media"
	"github.com/gianghaison/gianghaison.me/utils"
)

// MediaController exposes the image upload pipeline over HTTP.
type MediaController struct {
	pipeline *media.Pipeline
}

func NewMediaController(pipeline *media.Pipeline) *MediaController {
	return &MediaController{pipeline: pipeline}
}

// Upload accepts a multipart image, runs it through the processing
// pipeline and returns the stored object's public URL and metadata.
func (m *MediaController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Fail(ctx, 40050, utils.NewAppError(utils.KindMissingRequiredField, "file is required"))
		return
	}
	defer file.Close()

	folder := ctx.PostForm("folder")
	if folder == "" {
		folder = media.FolderBlog
	}

	// One byte past the limit is enough for the pipeline to reject the
	// upload without buffering an arbitrarily large body.
	data, err := io.ReadAll(io.LimitReader(file, media.MaxUploadBytes+1))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to read upload")
		return
	}

	result, err := m.pipeline.Upload(ctx.Request.Context(), data, header.Filename, folder)
	if err != nil {
		utils.Logger.Warn("upload rejected",
			zap.String("filename", header.Filename),
			zap.String("folder", folder),
			zap.Error(err))
		utils.Fail(ctx, 40051, err)
		return
	}

	utils.Logger.Info("image uploaded",
		zap.String("key", result.Key),
		zap.Int("width", result.Processed.Width),
		zap.Int("size", result.Processed.Size))
	utils.Success(ctx, result)
}

// List returns stored objects under ?folder= (both folders when absent).
func (m *MediaController) List(ctx *gin.Context) {
	folder := ctx.Query("folder")
	objects, err := m.pipeline.List(ctx.Request.Context(), folder)
	if err != nil {
		utils.Fail(ctx, 50051, err)
		return
	}
	utils.Success(ctx, gin.H{"objects": objects})
}

// Delete removes the stored object named by ?key=.
func (m *MediaController) Delete(ctx *gin.Context) {
	key := ctx.Query("key")
	if key == "" {
		utils.Fail(ctx, 40052, utils.NewAppError(utils.KindMissingRequiredField, "key is required"))
		return
	}
	if err := m.pipeline.Delete(ctx.Request.Context(), key); err != nil {
		utils.Fail(ctx, 50052, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "object deleted"})
}
