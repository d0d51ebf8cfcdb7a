package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gianghaison/gianghaison.me/models"
	"github.com/gianghaison/gianghaison.me/utils"
)

const artCachePrefix = "cache:art:"

// ArtController manages the artwork gallery. Read endpoints are cached in
// Redis; every mutation drops the whole prefix.
type ArtController struct {
	db *gorm.DB
}

func NewArtController(db *gorm.DB) *ArtController {
	return &ArtController{db: db}
}

func (a *ArtController) loadAll() ([]models.Artwork, error) {
	var works []models.Artwork
	if err := a.db.Order("created_at DESC").Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// ListArtworks returns all artworks, newest first, optionally filtered
// by ?category=.
func (a *ArtController) ListArtworks(ctx *gin.Context) {
	category := ctx.Query("category")
	cacheKey := artCachePrefix + "list:" + category
	if utils.ServeCached(ctx, cacheKey) {
		return
	}

	works, err := a.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list artworks")
		return
	}
	if category != "" {
		filtered := make([]models.Artwork, 0, len(works))
		for _, w := range works {
			if w.Category == category {
				filtered = append(filtered, w)
			}
		}
		works = filtered
	}

	data := gin.H{"artworks": works}
	utils.CacheSuccess(cacheKey, data, time.Hour)
	utils.Success(ctx, data)
}

// ListCategories returns the sorted distinct categories in use.
func (a *ArtController) ListCategories(ctx *gin.Context) {
	cacheKey := artCachePrefix + "categories"
	if utils.ServeCached(ctx, cacheKey) {
		return
	}

	works, err := a.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list artworks")
		return
	}

	data := gin.H{"categories": models.CollectCategories(works)}
	utils.CacheSuccess(cacheKey, data, time.Hour)
	utils.Success(ctx, data)
}

// GetArtworkBySlug returns one artwork plus its neighbours in the
// newest-first gallery ordering.
func (a *ArtController) GetArtworkBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	works, err := a.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load artworks")
		return
	}

	var found *models.Artwork
	for i := range works {
		if works[i].Slug == slug {
			found = &works[i]
			break
		}
	}
	if found == nil {
		utils.Fail(ctx, 40430, utils.NewAppError(utils.KindNotFound, "artwork not found"))
		return
	}

	previous, next := models.AdjacentArtworks(works, slug)
	utils.Success(ctx, gin.H{
		"artwork":  found,
		"previous": previous,
		"next":     next,
	})
}

type createArtworkRequest struct {
	Title       string   `json:"title" binding:"required,min=1"`
	Slug        string   `json:"slug"`
	Image       string   `json:"image" binding:"required,min=1"`
	Medium      string   `json:"medium"`
	Dimensions  string   `json:"dimensions"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// CreateArtwork validates and stores a new gallery entry.
func (a *ArtController) CreateArtwork(ctx *gin.Context) {
	var req createArtworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40040, utils.NewAppError(utils.KindMissingRequiredField, "missing required fields: title, image"))
		return
	}

	title := utils.SanitizeStrict(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Fail(ctx, 40041, utils.NewAppError(utils.KindMissingRequiredField, "title cannot be empty"))
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryWatercolor
	}
	if !models.ValidCategory(category) {
		utils.Fail(ctx, 40042, utils.NewAppError(utils.KindInvalidEnumValue, "invalid category: "+req.Category))
		return
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if slug == "" {
		utils.Fail(ctx, 40043, utils.NewAppError(utils.KindMissingRequiredField, "slug cannot be empty"))
		return
	}

	work := models.Artwork{
		Slug:        slug,
		Title:       title,
		Image:       req.Image,
		Medium:      req.Medium,
		Dimensions:  req.Dimensions,
		Description: utils.SanitizeStrict(req.Description),
		Category:    category,
		Tags:        datatypes.JSONSlice[string](req.Tags),
	}

	if err := a.db.Create(&work).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to create artwork")
		return
	}

	utils.InvalidateByPrefix(artCachePrefix)
	utils.Success(ctx, gin.H{"artwork": work})
}

type updateArtworkRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Image       *string   `json:"image"`
	Medium      *string   `json:"medium"`
	Dimensions  *string   `json:"dimensions"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}

// UpdateArtwork applies a partial update; absent fields stay untouched.
func (a *ArtController) UpdateArtwork(ctx *gin.Context) {
	var req updateArtworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, "invalid request payload")
		return
	}

	var work models.Artwork
	if err := a.db.First(&work, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Fail(ctx, 40431, utils.NewAppError(utils.KindNotFound, "artwork not found"))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to load artwork")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.SanitizeStrict(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Fail(ctx, 40045, utils.NewAppError(utils.KindMissingRequiredField, "title cannot be empty"))
			return
		}
		updates["title"] = title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			utils.Fail(ctx, 40046, utils.NewAppError(utils.KindMissingRequiredField, "slug cannot be empty"))
			return
		}
		updates["slug"] = slug
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Medium != nil {
		updates["medium"] = *req.Medium
	}
	if req.Dimensions != nil {
		updates["dimensions"] = *req.Dimensions
	}
	if req.Description != nil {
		updates["description"] = utils.SanitizeStrict(*req.Description)
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.Fail(ctx, 40047, utils.NewAppError(utils.KindInvalidEnumValue, "invalid category: "+*req.Category))
			return
		}
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*req.Tags)
	}

	if len(updates) > 0 {
		if err := a.db.Model(&work).Updates(updates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to update artwork")
			return
		}
	}

	if err := a.db.First(&work, work.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to reload artwork")
		return
	}

	utils.InvalidateByPrefix(artCachePrefix)
	utils.Success(ctx, gin.H{"artwork": work})
}

// DeleteArtwork removes an artwork by id.
func (a *ArtController) DeleteArtwork(ctx *gin.Context) {
	var work models.Artwork
	if err := a.db.First(&work, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Fail(ctx, 40432, utils.NewAppError(utils.KindNotFound, "artwork not found"))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to load artwork")
		return
	}

	if err := a.db.Delete(&work).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50048, "failed to delete artwork")
		return
	}

	utils.InvalidateByPrefix(artCachePrefix)
	utils.Success(ctx, gin.H{"message": "artwork deleted"})
}
