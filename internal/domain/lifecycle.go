package domain

import "fmt"

// Operation is a lifecycle operation on an article.
type Operation string

const (
	OpSubmit        Operation = "submit"
	OpEdit          Operation = "edit"
	OpApprove       Operation = "approve"
	OpReject        Operation = "reject"
	OpRequestDelete Operation = "request_delete"
	OpAdminDelete   Operation = "admin_delete"
)

// transition is one row of the guard table: the statuses an operation
// may start from and who may perform it. Operations that are not
// adminOnly are permitted to the article owner or an admin.
type transition struct {
	from      map[Status]bool
	adminOnly bool
}

var transitions = map[Operation]transition{
	OpEdit: {
		from: map[Status]bool{StatusDraft: true, StatusPending: true, StatusPublic: true, StatusReviewDelete: true},
	},
	OpApprove: {
		from:      map[Status]bool{StatusPending: true},
		adminOnly: true,
	},
	OpReject: {
		from:      map[Status]bool{StatusPending: true},
		adminOnly: true,
	},
	OpRequestDelete: {
		from: map[Status]bool{StatusDraft: true, StatusPending: true, StatusPublic: true},
	},
	OpAdminDelete: {
		from:      map[Status]bool{StatusDraft: true, StatusPending: true, StatusPublic: true, StatusReviewDelete: true},
		adminOnly: true,
	},
}

// Authorize checks op against the guard table. It is the single
// authorization point for every lifecycle operation: role and
// ownership are checked before the status edge, and a violation of
// either surfaces ErrForbidden without touching the article.
func Authorize(op Operation, article *Article, caller Identity) error {
	t, ok := transitions[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrForbidden, op)
	}
	if t.adminOnly && !caller.IsAdmin() {
		return fmt.Errorf("%w: %s requires admin role", ErrForbidden, op)
	}
	if !t.adminOnly && !caller.IsAdmin() && caller.UserID != article.OwnerID {
		return fmt.Errorf("%w: caller %s does not own article %s", ErrForbidden, caller.UserID, article.ID)
	}
	if !t.from[article.Status] {
		return fmt.Errorf("%w: cannot %s an article in status %s", ErrForbidden, op, article.Status)
	}
	return nil
}

// InitialStatus is the status a new submission starts in. Admins may
// publish directly when the deployment enables that policy; everyone
// else goes through review.
func InitialStatus(caller Identity, adminPublishDirect bool) Status {
	if adminPublishDirect && caller.IsAdmin() {
		return StatusPublic
	}
	return StatusPending
}

// NextStatusOnEdit is the status an article lands in after an edit.
// Owner edits always go back through review; admin edits keep the
// article where it is.
func NextStatusOnEdit(current Status, caller Identity) Status {
	if caller.IsAdmin() {
		return current
	}
	return StatusPending
}
