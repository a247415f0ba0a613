package service

import (
	"context"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
)

// SubmitInput is the payload of a new article submission.
type SubmitInput struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
	ImageRef string `json:"image" binding:"required"`
}

// EditInput is the payload of an article edit. Nil fields keep their
// stored value.
type EditInput struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
	ImageRef *string `json:"image"`
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ArticleServiceInterface defines the article lifecycle and read
// operations. Used for dependency injection and stubbing in tests.
type ArticleServiceInterface interface {
	// Submit creates a new article in Pending (or Public for admins,
	// depending on deployment policy).
	Submit(ctx context.Context, caller domain.Identity, in SubmitInput) (*domain.Article, error)
	// Edit mutates an article's fields and routes it back through review.
	Edit(ctx context.Context, caller domain.Identity, id string, in EditInput) (*domain.Article, error)
	// Approve moves a Pending article to Public. Admin only.
	Approve(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error)
	// Reject moves a Pending article back to Draft. Admin only.
	Reject(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error)
	// RequestDelete flags an article for deletion review.
	RequestDelete(ctx context.Context, caller domain.Identity, id string) (*domain.Article, error)
	// AdminDelete removes an article permanently. Admin only.
	AdminDelete(ctx context.Context, caller domain.Identity, id string) error

	ListPublic(ctx context.Context, q repository.ArticleQuery) ([]domain.Article, error)
	GetPublicBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListByOwner(ctx context.Context, caller domain.Identity, ownerID string) ([]domain.Article, error)
	ListAll(ctx context.Context, caller domain.Identity) ([]domain.Article, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// AuthServiceInterface defines account registration and login.
type AuthServiceInterface interface {
	// Register creates a new account with the user role.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns the user with a signed token.
	Login(ctx context.Context, in LoginInput) (*domain.User, string, error)
}

// ViewRecorder records a view of a public article. Implementations are
// expected to be non-blocking.
type ViewRecorder interface {
	Record(articleID string)
}
