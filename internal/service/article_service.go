package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
	"github.com/zeroongit/Smart-news-hub/internal/logger"
	"github.com/zeroongit/Smart-news-hub/internal/metrics"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
	"github.com/zeroongit/Smart-news-hub/internal/slug"
	"github.com/zeroongit/Smart-news-hub/internal/validator"
)

// slugCommitRetries bounds how often a write is replayed after losing
// the slug uniqueness race at commit time. Each replay re-runs the
// allocation probe against the updated existence set, so exhausting
// this means the same base slug is being hammered concurrently.
const slugCommitRetries = 5

// ArticleService owns the article status state machine. Every mutation
// goes through the guard table in the domain package before any field
// is touched, and slug/category slugs are re-derived whenever their
// driving fields change.
type ArticleService struct {
	articles  repository.ArticleRepository
	views     ViewRecorder
	validator *validator.Validator

	adminPublishDirect bool
	defaultCategory    string
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articles repository.ArticleRepository,
	views ViewRecorder,
	v *validator.Validator,
	adminPublishDirect bool,
	defaultCategory string,
) *ArticleService {
	return &ArticleService{
		articles:           articles,
		views:              views,
		validator:          v,
		adminPublishDirect: adminPublishDirect,
		defaultCategory:    defaultCategory,
	}
}

// Submit creates a new article owned by the caller. Non-admin
// submissions always start in Pending; admin submissions start in
// Public when the deployment enables direct publishing.
func (s *ArticleService) Submit(ctx context.Context, caller domain.Identity, in SubmitInput) (*domain.Article, error) {
	category := in.Category
	if category == "" {
		category = s.defaultCategory
	}
	categorySlug := slug.Normalize(category)
	if categorySlug == "" {
		return nil, fmt.Errorf("%w: category %q normalizes to an empty slug", domain.ErrValidation, category)
	}

	base := slug.Normalize(in.Title)
	if base == "" {
		metrics.ObserveArticleOperation(string(domain.OpSubmit), "invalid")
		return nil, fmt.Errorf("%w: title %q normalizes to an empty slug", domain.ErrValidation, in.Title)
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:           uuid.New().String(),
		OwnerID:      caller.UserID,
		Title:        in.Title,
		AuthorName:   caller.Name,
		Body:         in.Body,
		CategoryName: category,
		CategorySlug: categorySlug,
		Slug:         base,
		Status:       domain.InitialStatus(caller, s.adminPublishDirect),
		ImageRef:     in.ImageRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.validator.ValidateArticle(article); err != nil {
		metrics.ObserveArticleOperation(string(domain.OpSubmit), "invalid")
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := s.commitWithSlug(ctx, article, in.Title, "", s.articles.Insert)
	if err != nil {
		metrics.ObserveArticleOperation(string(domain.OpSubmit), "error")
		return nil, err
	}

	metrics.ObserveArticleOperation(string(domain.OpSubmit), "success")
	logger.InfoContext(ctx, "Article submitted",
		slog.String("article_id", article.ID),
		slog.String("slug", article.Slug),
		slog.String("status", string(article.Status)))
	return article, nil
}

// Edit applies a partial update. Owner edits land back in Pending for
// re-review; admin edits keep the current status. The slug is
// re-derived only when the title actually changes, and the category
// slug only when the category label changes.
func (s *ArticleService) Edit(ctx context.Context, caller domain.Identity, id string, in EditInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	if err := domain.Authorize(domain.OpEdit, article, caller); err != nil {
		metrics.ObserveArticleOperation(string(domain.OpEdit), "forbidden")
		return nil, err
	}

	titleChanged := in.Title != nil && *in.Title != article.Title
	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Body != nil {
		article.Body = *in.Body
	}
	if in.ImageRef != nil {
		article.ImageRef = *in.ImageRef
	}
	if in.Category != nil && *in.Category != article.CategoryName {
		categorySlug := slug.Normalize(*in.Category)
		if categorySlug == "" {
			return nil, fmt.Errorf("%w: category %q normalizes to an empty slug", domain.ErrValidation, *in.Category)
		}
		article.CategoryName = *in.Category
		article.CategorySlug = categorySlug
	}

	article.Status = domain.NextStatusOnEdit(article.Status, caller)
	article.UpdatedAt = time.Now().UTC()

	if titleChanged {
		if base := slug.Normalize(article.Title); base == "" {
			return nil, fmt.Errorf("%w: title %q normalizes to an empty slug", domain.ErrValidation, article.Title)
		}
	}

	if err := s.validator.ValidateArticle(article); err != nil {
		metrics.ObserveArticleOperation(string(domain.OpEdit), "invalid")
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if titleChanged {
		err = s.commitWithSlug(ctx, article, article.Title, article.ID, s.articles.Update)
	} else {
		err = s.articles.Update(ctx, article)
	}
	if err != nil {
		metrics.ObserveArticleOperation(string(domain.OpEdit), "error")
		return nil, err
	}

	metrics.ObserveArticleOperation(string(domain.OpEdit), "success")
	logger.InfoContext(ctx, "Article edited",
		slog.String("article_id", article.ID),
		slog.String("slug", article.Slug),
		slog.String("status", string(article.Status)))
	return article, nil
}

// Approve moves a Pending article to Public. Admin only.
func (s *ArticleService) Approve(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error) {
	return s.transition(ctx, caller, id, domain.OpApprove, domain.StatusPublic)
}

// Reject moves a Pending article back to Draft. Admin only.
func (s *ArticleService) Reject(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error) {
	return s.transition(ctx, caller, id, domain.OpReject, domain.StatusDraft)
}

// RequestDelete flags an article for deletion review. The record stays
// intact; only an admin delete actually removes it.
func (s *ArticleService) RequestDelete(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error) {
	return s.transition(ctx, caller, id, domain.OpRequestDelete, domain.StatusReviewDelete)
}

// AdminDelete removes an article permanently. Admin only, legal from
// any status.
func (s *ArticleService) AdminDelete(ctx context.Context, caller domain.Identity, id string) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	if err := domain.Authorize(domain.OpAdminDelete, article, caller); err != nil {
		metrics.ObserveArticleOperation(string(domain.OpAdminDelete), "forbidden")
		return err
	}

	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		metrics.ObserveArticleOperation(string(domain.OpAdminDelete), "error")
		return err
	}
	if !deleted {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}

	metrics.ObserveArticleOperation(string(domain.OpAdminDelete), "success")
	logger.InfoContext(ctx, "Article deleted",
		slog.String("article_id", id),
		slog.String("deleted_by", caller.UserID))
	return nil
}

// transition performs a pure status change with no field mutation.
func (s *ArticleService) transition(ctx context.Context, caller domain.Identity, id string, op domain.Operation, to domain.Status) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	if err := domain.Authorize(op, article, caller); err != nil {
		metrics.ObserveArticleOperation(string(op), "forbidden")
		return nil, err
	}

	article.Status = to
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		metrics.ObserveArticleOperation(string(op), "error")
		return nil, err
	}

	metrics.ObserveArticleOperation(string(op), "success")
	logger.InfoContext(ctx, "Article status changed",
		slog.String("article_id", article.ID),
		slog.String("operation", string(op)),
		slog.String("status", string(to)))
	return article, nil
}

// commitWithSlug allocates a unique slug for title and commits the
// article. When the storage-level unique constraint rejects the write
// (a concurrent writer took the candidate between probe and commit),
// allocation is re-run against the now-updated existence set. The loop
// is bounded; exhaustion surfaces as a Conflict.
func (s *ArticleService) commitWithSlug(
	ctx context.Context,
	article *domain.Article,
	title, excludeID string,
	commit func(context.Context, *domain.Article) error,
) error {
	for attempt := 0; attempt < slugCommitRetries; attempt++ {
		allocated, err := slug.Allocate(ctx, title, s.articles.SlugExists, excludeID)
		if errors.Is(err, slug.ErrEmpty) {
			return fmt.Errorf("%w: title %q normalizes to an empty slug", domain.ErrValidation, title)
		}
		if errors.Is(err, slug.ErrExhausted) {
			break
		}
		if err != nil {
			return err
		}

		article.Slug = allocated
		err = commit(ctx, article)
		if errors.Is(err, repository.ErrDuplicateSlug) {
			metrics.SlugCollisionRetriesTotal.Inc()
			logger.WarnContext(ctx, "Slug taken at commit, reallocating",
				slog.String("slug", allocated),
				slog.Int("attempt", attempt+1))
			continue
		}
		return err
	}
	return fmt.Errorf("%w: could not allocate a unique slug for %q", domain.ErrConflict, title)
}

// ListPublic returns public articles matching q, newest first.
func (s *ArticleService) ListPublic(ctx context.Context, q repository.ArticleQuery) ([]domain.Article, error) {
	return s.articles.ListPublic(ctx, q)
}

// GetPublicBySlug returns a single public article and records a view.
// Non-public articles are indistinguishable from missing ones.
func (s *ArticleService) GetPublicBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	article, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if article == nil || article.Status != domain.StatusPublic {
		return nil, fmt.Errorf("article %q: %w", articleSlug, domain.ErrNotFound)
	}
	s.views.Record(article.ID)
	return article, nil
}

// ListByOwner returns all of one user's articles. Callers may only
// list their own unless they are admins.
func (s *ArticleService) ListByOwner(ctx context.Context, caller domain.Identity, ownerID string) ([]domain.Article, error) {
	if !caller.IsAdmin() && caller.UserID != ownerID {
		return nil, fmt.Errorf("%w: caller %s cannot list articles of %s", domain.ErrForbidden, caller.UserID, ownerID)
	}
	return s.articles.ListByOwner(ctx, ownerID)
}

// ListAll returns every article in any status. Admin only.
func (s *ArticleService) ListAll(ctx context.Context, caller domain.Identity) ([]domain.Article, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: listing all articles requires admin role", domain.ErrForbidden)
	}
	return s.articles.ListAll(ctx)
}

// Categories enumerates the categories of public articles.
func (s *ArticleService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.articles.DistinctCategories(ctx)
}
