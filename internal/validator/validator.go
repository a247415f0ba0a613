package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	validStatuses = []interface{}{domain.StatusDraft, domain.StatusPending, domain.StatusPublic, domain.StatusReviewDelete}
)

// Validator provides validation methods for domain entities and
// request inputs.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates an Article entity before it is persisted.
// Both slug fields must already be derived.
func (v *Validator) ValidateArticle(a *domain.Article) error {
	return validation.ValidateStruct(a,
		validation.Field(&a.OwnerID,
			validation.Required.Error("owner_id_required"),
		),
		validation.Field(&a.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, 200).Error("title_too_long"),
		),
		validation.Field(&a.Body,
			validation.Required.Error("body_required"),
		),
		validation.Field(&a.ImageRef,
			validation.Required.Error("image_required"),
		),
		validation.Field(&a.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
		validation.Field(&a.CategorySlug,
			validation.Required.Error("category_slug_required"),
			validation.Match(slugRegex).Error("invalid_category_slug_format"),
		),
		validation.Field(&a.Status,
			validation.Required.Error("status_required"),
			validation.In(validStatuses...).Error("invalid_status"),
		),
	)
}

// ValidateRegistration validates a registration request.
func (v *Validator) ValidateRegistration(email, name, password string) error {
	return validation.Errors{
		"email": validation.Validate(email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		"name": validation.Validate(name,
			validation.Required.Error("name_required"),
			validation.Length(1, 100).Error("name_too_long"),
		),
		"password": validation.Validate(password,
			validation.Required.Error("password_required"),
			validation.Length(8, 72).Error("password_length"),
		),
	}.Filter()
}
