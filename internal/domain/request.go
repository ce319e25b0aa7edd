package domain

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is a requisition record: a material request references a material
// by ID, a production (stock) request carries the product name directly.
type Request struct {
	ID          uint
	ItemRef     string
	Quantity    int
	Status      string
	RequestedBy string
	DecidedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDecidableStatus reports whether s is a status an approver may set.
// Requests are created pending; pending is never a decision.
func IsDecidableStatus(s string) bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}
