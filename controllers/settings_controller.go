package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gianghaison/gianghaison.me/models"
	"github.com/gianghaison/gianghaison.me/utils"
)

const settingsCacheKey = "cache:settings"

// SettingsController serves the site settings singleton.
type SettingsController struct {
	db *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{db: db}
}

func (s *SettingsController) load() (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		return models.SiteSettings{}, nil
	}
	return settings, err
}

// GetSettings returns the stored settings merged over the hardcoded
// defaults, so the public site always sees a complete record.
func (s *SettingsController) GetSettings(ctx *gin.Context) {
	if utils.ServeCached(ctx, settingsCacheKey) {
		return
	}

	settings, err := s.load()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load settings")
		return
	}

	data := gin.H{"settings": settings.MergedOverDefaults()}
	utils.CacheSuccess(settingsCacheKey, data, time.Hour)
	utils.Success(ctx, data)
}

type updateSettingsRequest struct {
	SiteName        *string `json:"siteName"`
	SiteDescription *string `json:"siteDescription"`
	AuthorName      *string `json:"authorName"`
	AuthorEmail     *string `json:"authorEmail"`
	GithubURL       *string `json:"githubUrl"`
}

// UpdateSettings merges the provided fields into the singleton record,
// creating it on first write.
func (s *SettingsController) UpdateSettings(ctx *gin.Context) {
	var req updateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	settings, err := s.load()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load settings")
		return
	}

	if req.SiteName != nil {
		settings.SiteName = *req.SiteName
	}
	if req.SiteDescription != nil {
		settings.SiteDescription = *req.SiteDescription
	}
	if req.AuthorName != nil {
		settings.AuthorName = *req.AuthorName
	}
	if req.AuthorEmail != nil {
		settings.AuthorEmail = *req.AuthorEmail
	}
	if req.GithubURL != nil {
		settings.GithubURL = *req.GithubURL
	}

	if err := s.db.Save(&settings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to save settings")
		return
	}

	utils.InvalidateByPrefix(settingsCacheKey)
	utils.Success(ctx, gin.H{"settings": settings.MergedOverDefaults()})
}
