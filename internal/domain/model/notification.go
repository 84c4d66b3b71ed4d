package model

import (
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Notification value
// ---------------------------------------------------------------------------

// Notification severity levels.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Notification is an alert handed to the notification sink. ReferenceKey is
// the application-chosen idempotency key: the sink must not deliver two
// notifications with the same key.
type Notification struct {
	ReferenceKey string
	TargetRole   string
	BorrowerID   string
	Type         string
	Title        string
	Message      string
	Severity     string
	CreatedAt    time.Time
}

// Validate checks the notification is addressable and keyed.
func (n Notification) Validate() error {
	if n.ReferenceKey == "" {
		return errors.New("reference key is required")
	}
	if n.TargetRole == "" && n.BorrowerID == "" {
		return errors.New("notification needs a target role or borrower")
	}
	return nil
}

// ---------------------------------------------------------------------------
// DisbursementReceipt entity
// ---------------------------------------------------------------------------

// DisbursementReceipt is the source of truth for how a loan's funds left the
// platform. Exactly one receipt exists per loan; the loan row carries a
// denormalized copy of method and receipt number for read convenience.
type DisbursementReceipt struct {
	ID            string
	LoanID        string
	ApplicationID string
	Method        string
	Reference     string
	ReceiptNumber string
	DisbursedAt   time.Time
}
