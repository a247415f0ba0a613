package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
)

const articleColumns = `id, owner_id, title, author_name, body, category_name, category_slug,
		slug, status, image_ref, visitor_count, created_at, updated_at`

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// Insert persists a new article. The unique index on slug makes the
// commit the final arbiter of slug uniqueness under concurrent writes;
// a violation surfaces as ErrDuplicateSlug.
func (r *PostgresArticleRepository) Insert(ctx context.Context, a *domain.Article) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO articles (id, owner_id, title, author_name, body, category_name,
			category_slug, slug, status, image_ref, visitor_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, a.ID, a.OwnerID, a.Title, a.AuthorName, a.Body, a.CategoryName,
		a.CategorySlug, a.Slug, a.Status, a.ImageRef, a.VisitorCount, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", translateConstraint(err))
	}
	return nil
}

// Update rewrites all mutable fields of an existing article.
func (r *PostgresArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET title = $2, author_name = $3, body = $4, category_name = $5,
			category_slug = $6, slug = $7, status = $8, image_ref = $9, updated_at = $10
		WHERE id = $1
	`, a.ID, a.Title, a.AuthorName, a.Body, a.CategoryName,
		a.CategorySlug, a.Slug, a.Status, a.ImageRef, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update article: %w", translateConstraint(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update article %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an article permanently.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves an article by ID, regardless of status.
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE id = $1
	`, id)
	return scanArticle(row)
}

// GetBySlug retrieves an article by slug, regardless of status.
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE slug = $1
	`, slug)
	return scanArticle(row)
}

// SlugExists reports whether slug is taken by any article other than
// excludeID.
func (r *PostgresArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM articles
			WHERE slug = $1 AND ($2 = '' OR id::text <> $2)
		)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

// ListPublic returns public articles, newest first, optionally filtered
// by a search term and a category slug.
func (r *PostgresArticleRepository) ListPublic(ctx context.Context, q ArticleQuery) ([]domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE status = 'Public'`
	args := []interface{}{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR body ILIKE $%d)", n, n)
	}
	if q.CategorySlug != "" {
		args = append(args, q.CategorySlug)
		query += fmt.Sprintf(" AND category_slug = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list public articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// ListByOwner returns all of one user's articles, newest first.
func (r *PostgresArticleRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list articles by owner: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// ListAll returns every article in any status, newest first.
func (r *PostgresArticleRepository) ListAll(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// DistinctCategories enumerates the categories of public articles. The
// display name is the most recently used raw label for the slug.
func (r *PostgresArticleRepository) DistinctCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (category_slug) category_slug, category_name
		FROM articles
		WHERE status = 'Public'
		ORDER BY category_slug, updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// IncrementVisitorCount bumps the monotonically non-decreasing view
// counter. It is fire-and-forget from the caller's perspective.
func (r *PostgresArticleRepository) IncrementVisitorCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE articles SET visitor_count = visitor_count + 1 WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("increment visitor count: %w", err)
	}
	return nil
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.OwnerID, &a.Title, &a.AuthorName, &a.Body, &a.CategoryName,
		&a.CategorySlug, &a.Slug, &a.Status, &a.ImageRef, &a.VisitorCount, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Title, &a.AuthorName, &a.Body, &a.CategoryName,
			&a.CategorySlug, &a.Slug, &a.Status, &a.ImageRef, &a.VisitorCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// translateConstraint maps PostgreSQL unique violations (23505) to the
// repository's sentinel errors so upper layers can react without
// knowing about pgconn.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "slug"):
			return ErrDuplicateSlug
		case strings.Contains(pgErr.ConstraintName, "email"):
			return ErrDuplicateEmail
		}
	}
	return err
}
