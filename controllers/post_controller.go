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

// PostController manages blog post CRUD and the public published views.
// Every record coming out of storage passes through Normalized before any
// business logic touches it, so legacy-schema rows never leak outward.
type PostController struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostController creates a PostController using the wall clock.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db, now: time.Now}
}

func (p *PostController) loadAll() ([]models.Post, error) {
	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i] = posts[i].Normalized()
	}
	return posts, nil
}

// ListPosts returns the publicly visible posts, newest first. Visibility is
// computed per request so scheduled posts appear the moment their time passes.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}
	visible := models.FilterPublished(posts, p.now())
	utils.Success(ctx, gin.H{"posts": visible})
}

// ListAllPosts returns every post including drafts, for the admin panel.
func (p *PostController) ListAllPosts(ctx *gin.Context) {
	posts, err := p.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

// GetPostBySlug returns one visible post plus its previous/next neighbours
// within the published collection.
func (p *PostController) GetPostBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	posts, err := p.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load posts")
		return
	}
	visible := models.FilterPublished(posts, p.now())

	var found *models.Post
	for i := range visible {
		if visible[i].Slug == slug {
			found = &visible[i]
			break
		}
	}
	if found == nil {
		utils.Fail(ctx, 40420, utils.NewAppError(utils.KindNotFound, "post not found"))
		return
	}

	previous, next := models.AdjacentPosts(visible, slug)
	utils.Success(ctx, gin.H{
		"post":     found,
		"previous": previous,
		"next":     next,
	})
}

// ListTags returns the sorted union of tags across visible posts.
func (p *PostController) ListTags(ctx *gin.Context) {
	posts, err := p.loadAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load posts")
		return
	}
	tags := models.CollectTags(models.FilterPublished(posts, p.now()))
	utils.Success(ctx, gin.H{"tags": tags})
}

// GetPost returns one post by id for the admin editor, drafts included.
func (p *PostController) GetPost(ctx *gin.Context) {
	var post models.Post
	if err := p.db.First(&post, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Fail(ctx, 40421, utils.NewAppError(utils.KindNotFound, "post not found"))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}
	post = post.Normalized()
	utils.Success(ctx, gin.H{"post": post})
}

type createPostRequest struct {
	Title       string     `json:"title" binding:"required,min=1"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author"`
	Lang        string     `json:"lang"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// CreatePost validates and stores a new post. Scheduled posts must carry a
// future scheduled time; publishing stamps publishedAt immediately.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40020, utils.NewAppError(utils.KindMissingRequiredField, "missing required fields: title"))
		return
	}

	title := utils.SanitizeStrict(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Fail(ctx, 40021, utils.NewAppError(utils.KindMissingRequiredField, "title cannot be empty"))
		return
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if slug == "" {
		utils.Fail(ctx, 40022, utils.NewAppError(utils.KindMissingRequiredField, "slug cannot be empty"))
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		utils.Fail(ctx, 40023, utils.NewAppError(utils.KindInvalidEnumValue, "invalid status: "+req.Status))
		return
	}
	if req.Lang != "" && !models.ValidLang(req.Lang) {
		utils.Fail(ctx, 40026, utils.NewAppError(utils.KindInvalidEnumValue, "invalid lang: "+req.Lang))
		return
	}

	now := p.now()
	post := models.Post{
		Slug:    slug,
		Title:   title,
		Content: utils.Sanitize(req.Content),
		Excerpt: utils.SanitizeStrict(req.Excerpt),
		Tags:    datatypes.JSONSlice[string](req.Tags),
		Author:  req.Author,
		Lang:    req.Lang,
		Status:  status,
	}

	switch status {
	case models.StatusScheduled:
		if req.ScheduledAt == nil {
			utils.Fail(ctx, 40024, utils.NewAppError(utils.KindMissingRequiredField, "scheduledAt is required for scheduled posts"))
			return
		}
		if !req.ScheduledAt.After(now) {
			utils.Fail(ctx, 40025, utils.NewAppError(utils.KindInvalidEnumValue, "scheduledAt must be in the future"))
			return
		}
		post.ScheduledAt = req.ScheduledAt
	case models.StatusPublished:
		post.PublishedAt = &now
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to create post")
		return
	}

	post = post.Normalized()
	utils.Success(ctx, gin.H{"post": post})
}

type updatePostRequest struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Content     *string    `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Tags        *[]string  `json:"tags"`
	Author      *string    `json:"author"`
	Lang        *string    `json:"lang"`
	Status      *string    `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// UpdatePost applies a partial update: absent fields stay untouched. Status
// transitions carry side effects — first publish stamps publishedAt (then
// never overwrites it), and leaving the scheduled state clears scheduledAt.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req updatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	var post models.Post
	if err := p.db.First(&post, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Fail(ctx, 40422, utils.NewAppError(utils.KindNotFound, "post not found"))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load post")
		return
	}
	existing := post.Normalized()

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.SanitizeStrict(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Fail(ctx, 40031, utils.NewAppError(utils.KindMissingRequiredField, "title cannot be empty"))
			return
		}
		updates["title"] = title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			utils.Fail(ctx, 40032, utils.NewAppError(utils.KindMissingRequiredField, "slug cannot be empty"))
			return
		}
		updates["slug"] = slug
	}
	if req.Content != nil {
		updates["content"] = utils.Sanitize(*req.Content)
	}
	if req.Excerpt != nil {
		updates["excerpt"] = utils.SanitizeStrict(*req.Excerpt)
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*req.Tags)
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Lang != nil {
		if !models.ValidLang(*req.Lang) {
			utils.Fail(ctx, 40033, utils.NewAppError(utils.KindInvalidEnumValue, "invalid lang: "+*req.Lang))
			return
		}
		updates["lang"] = *req.Lang
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = *req.ScheduledAt
	}

	if req.Status != nil {
		tr, err := existing.TransitionStatus(*req.Status, req.ScheduledAt, p.now())
		if err != nil {
			utils.Fail(ctx, 40034, err)
			return
		}
		updates["status"] = tr.Status
		if tr.PublishedAt != nil {
			updates["published_at"] = *tr.PublishedAt
		}
		if tr.ClearScheduledAt {
			updates["scheduled_at"] = nil
		}
		// The legacy boolean is retired the first time a record is written
		// under the status schema.
		updates["published"] = nil
	}

	if len(updates) > 0 {
		if err := p.db.Model(&post).Updates(updates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to update post")
			return
		}
	}

	if err := p.db.First(&post, post.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to reload post")
		return
	}
	post = post.Normalized()
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post by id.
func (p *PostController) DeletePost(ctx *gin.Context) {
	var post models.Post
	if err := p.db.First(&post, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Fail(ctx, 40423, utils.NewAppError(utils.KindNotFound, "post not found"))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to load post")
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to delete post")
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}
