package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
	"github.com/zeroongit/Smart-news-hub/internal/middleware"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
	"github.com/zeroongit/Smart-news-hub/internal/service"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService service.ArticleServiceInterface
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Body         string `json:"body"`
	CategoryName string `json:"category_name"`
	Category     string `json:"category"`
	Slug         string `json:"slug"`
	Status       string `json:"status"`
	Image        string `json:"image"`
	VisitorCount int64  `json:"visitor_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Title:        a.Title,
		Author:       a.AuthorName,
		Body:         a.Body,
		CategoryName: a.CategoryName,
		Category:     a.CategorySlug,
		Slug:         a.Slug,
		Status:       string(a.Status),
		Image:        a.ImageRef,
		VisitorCount: a.VisitorCount,
		CreatedAt:    a.CreatedAt.Format(TimeFormat),
		UpdatedAt:    a.UpdatedAt.Format(TimeFormat),
	}
}

func toArticleResponses(articles []domain.Article) []ArticleResponse {
	responses := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, toArticleResponse(&articles[i]))
	}
	return responses
}

// callerIdentity pulls the identity set by the auth middleware.
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return identity, ok
}

// ListPublic handles GET /api/v1/news
func (h *ArticleHandler) ListPublic(c *gin.Context) {
	q := repository.ArticleQuery{
		Search:       c.Query("search"),
		CategorySlug: c.Query("category"),
	}

	articles, err := h.articleService.ListPublic(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// ListByCategory handles GET /api/v1/news/category/:categorySlug
func (h *ArticleHandler) ListByCategory(c *gin.Context) {
	q := repository.ArticleQuery{CategorySlug: c.Param("categorySlug")}

	articles, err := h.articleService.ListPublic(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// ListCategories handles GET /api/v1/news/categories
func (h *ArticleHandler) ListCategories(c *gin.Context) {
	categories, err := h.articleService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetBySlug handles GET /api/v1/news/slug/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.articleService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// Submit handles POST /api/v1/news
func (h *ArticleHandler) Submit(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var in service.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.Submit(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Edit handles PUT /api/v1/news/:id
func (h *ArticleHandler) Edit(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var in service.EditInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.Edit(c.Request.Context(), caller, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// Approve handles PUT /api/v1/news/:id/approve
func (h *ArticleHandler) Approve(c *gin.Context) {
	h.statusChange(c, h.articleService.Approve)
}

// Reject handles PUT /api/v1/news/:id/reject
func (h *ArticleHandler) Reject(c *gin.Context) {
	h.statusChange(c, h.articleService.Reject)
}

// RequestDelete handles PUT /api/v1/news/:id/request-delete
func (h *ArticleHandler) RequestDelete(c *gin.Context) {
	h.statusChange(c, h.articleService.RequestDelete)
}

// statusChange is shared by the pure status transition endpoints.
func (h *ArticleHandler) statusChange(c *gin.Context, op func(context.Context, domain.Identity, string) (*domain.Article, error)) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	article, err := op(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// AdminDelete handles DELETE /api/v1/news/:id
func (h *ArticleHandler) AdminDelete(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.articleService.AdminDelete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

// ListByUser handles GET /api/v1/news/user/:userId
func (h *ArticleHandler) ListByUser(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	articles, err := h.articleService.ListByOwner(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// ListAll handles GET /api/v1/news/admin/all
func (h *ArticleHandler) ListAll(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	articles, err := h.articleService.ListAll(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}
