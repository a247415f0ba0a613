package repository

import (
	"context"
	"errors"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
)

// Sentinel errors mapped from storage-level constraint violations.
var (
	// ErrDuplicateSlug means the unique index on articles.slug rejected
	// a write. The lifecycle layer reacts by re-running slug allocation.
	ErrDuplicateSlug = errors.New("repository: duplicate slug")
	// ErrDuplicateEmail means the unique constraint on users.email
	// rejected a write.
	ErrDuplicateEmail = errors.New("repository: duplicate email")
)

// ArticleQuery filters public article listings.
type ArticleQuery struct {
	// Search matches title or body, case-insensitively.
	Search string
	// CategorySlug restricts results to one category.
	CategorySlug string
}

// ArticleRepository defines methods for article data access.
// Lookups return (nil, nil) when no row matches.
type ArticleRepository interface {
	Insert(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	// Delete removes the article permanently and reports whether a row
	// was actually deleted.
	Delete(ctx context.Context, id string) (bool, error)

	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// SlugExists reports whether slug is taken by an article other than
	// excludeID (pass "" to check against all articles).
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)

	ListPublic(ctx context.Context, q ArticleQuery) ([]domain.Article, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Article, error)
	ListAll(ctx context.Context) ([]domain.Article, error)
	DistinctCategories(ctx context.Context) ([]domain.Category, error)

	IncrementVisitorCount(ctx context.Context, id string) error
}

// UserRepository defines methods for user data access.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
