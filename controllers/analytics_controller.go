package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gianghaison/gianghaison.me/models"
	"github.com/gianghaison/gianghaison.me/utils"
)

const dailyWindowDays = 7

// AnalyticsController records page views and serves the admin dashboard
// aggregates.
type AnalyticsController struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{db: db, now: time.Now}
}

type trackRequest struct {
	Path string `json:"path" binding:"required,min=1"`
}

// Track bumps the all-time counter for a path and today's daily total.
// Both writes are upserts with count = count + 1 evaluated in the
// database, so concurrent hits never lose increments.
func (a *AnalyticsController) Track(ctx *gin.Context) {
	var req trackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40070, utils.NewAppError(utils.KindMissingRequiredField, "path is required"))
		return
	}

	err := a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":      gorm.Expr("views + 1"),
			"updated_at": a.now(),
		}),
	}).Create(&models.PageView{Path: req.Path, Views: 1}).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to record view")
		return
	}

	today := a.now().Format("2006-01-02")
	err = a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views": gorm.Expr("views + 1"),
		}),
	}).Create(&models.DailyView{Date: today, Views: 1}).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to record daily view")
		return
	}

	utils.Success(ctx, gin.H{"message": "recorded"})
}

// GetAnalytics returns the dashboard aggregates: per-path counters sorted
// by traffic, the last seven days of daily totals with missing days
// zero-filled, and content counts.
func (a *AnalyticsController) GetAnalytics(ctx *gin.Context) {
	var pageViews []models.PageView
	if err := a.db.Order("views DESC").Find(&pageViews).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load page views")
		return
	}

	var totalViews int64
	for _, pv := range pageViews {
		totalViews += pv.Views
	}

	daily, err := a.dailySeries()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load daily views")
		return
	}

	var posts []models.Post
	if err := a.db.Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to count posts")
		return
	}
	for i := range posts {
		posts[i] = posts[i].Normalized()
	}
	published := int64(len(models.FilterPublished(posts, a.now())))

	var totalArt int64
	if err := a.db.Model(&models.Artwork{}).Count(&totalArt).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, "failed to count artworks")
		return
	}

	utils.Success(ctx, gin.H{
		"pageViews":  pageViews,
		"dailyViews": daily,
		"stats": gin.H{
			"totalViews":     totalViews,
			"totalPosts":     int64(len(posts)),
			"publishedPosts": published,
			"draftPosts":     int64(len(posts)) - published,
			"totalArtworks":  totalArt,
		},
	})
}

// dailySeries returns the last dailyWindowDays calendar days in ascending
// order, inserting zero entries for days without traffic.
func (a *AnalyticsController) dailySeries() ([]models.DailyView, error) {
	today := a.now()
	oldest := today.AddDate(0, 0, -(dailyWindowDays - 1)).Format("2006-01-02")

	var rows []models.DailyView
	if err := a.db.Where("date >= ?", oldest).Find(&rows).Error; err != nil {
		return nil, err
	}
	byDate := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r.Views
	}

	series := make([]models.DailyView, 0, dailyWindowDays)
	for i := dailyWindowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, models.DailyView{Date: date, Views: byDate[date]})
	}
	return series, nil
}
