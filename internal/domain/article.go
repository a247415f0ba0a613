package domain

import "time"

// Status is the moderation state of an article. It controls public
// visibility and which lifecycle operations are legal.
type Status string

const (
	// StatusDraft marks an article that was rejected by a moderator.
	// Not publicly visible.
	StatusDraft Status = "Draft"
	// StatusPending marks an article awaiting moderator review.
	StatusPending Status = "Pending"
	// StatusPublic marks an approved, publicly visible article.
	StatusPublic Status = "Public"
	// StatusReviewDelete marks a deletion request awaiting moderator
	// action. The record stays intact and reachable by admins.
	StatusReviewDelete Status = "ReviewDelete"
)

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []Status{StatusDraft, StatusPending, StatusPublic, StatusReviewDelete}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status Status) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Article represents a news article entity in the system.
//
// Slug is derived from Title and is unique across all articles.
// CategorySlug is derived from CategoryName and is intentionally shared
// between articles of the same category.
type Article struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"author"`
	Body         string    `json:"body"`
	CategoryName string    `json:"category_name"`
	CategorySlug string    `json:"category"`
	Slug         string    `json:"slug"`
	Status       Status    `json:"status"`
	ImageRef     string    `json:"image"`
	VisitorCount int64     `json:"visitor_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category is a distinct category label derived from public articles.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
