package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a disbursed loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive     = "active"
	loanStatusCompleted  = "completed"
	loanStatusDefaulted  = "defaulted"
	loanStatusWrittenOff = "written_off"
)

var (
	LoanStatusActive     = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted  = LoanStatus{value: loanStatusCompleted}
	LoanStatusDefaulted  = LoanStatus{value: loanStatusDefaulted}
	LoanStatusWrittenOff = LoanStatus{value: loanStatusWrittenOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:     LoanStatusActive,
	loanStatusCompleted:  LoanStatusCompleted,
	loanStatusDefaulted:  LoanStatusDefaulted,
	loanStatusWrittenOff: LoanStatusWrittenOff,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the approval stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPending     = "pending"
	appStatusUnderReview = "under_review"
	appStatusApproved    = "approved"
	appStatusRejected    = "rejected"
	appStatusDisbursed   = "disbursed"
)

var (
	ApplicationStatusPending     = ApplicationStatus{value: appStatusPending}
	ApplicationStatusUnderReview = ApplicationStatus{value: appStatusUnderReview}
	ApplicationStatusApproved    = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected    = ApplicationStatus{value: appStatusRejected}
	ApplicationStatusDisbursed   = ApplicationStatus{value: appStatusDisbursed}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPending:     ApplicationStatusPending,
	appStatusUnderReview: ApplicationStatusUnderReview,
	appStatusApproved:    ApplicationStatusApproved,
	appStatusRejected:    ApplicationStatusRejected,
	appStatusDisbursed:   ApplicationStatusDisbursed,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further approval transitions are possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s.value == appStatusDisbursed || s.value == appStatusRejected
}

// ---------------------------------------------------------------------------
// PaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// PaymentStatus classifies a recorded payment.
type PaymentStatus struct {
	value string
}

const (
	paymentStatusPaid    = "paid"
	paymentStatusLate    = "late"
	paymentStatusPending = "pending"
)

var (
	PaymentStatusPaid    = PaymentStatus{value: paymentStatusPaid}
	PaymentStatusLate    = PaymentStatus{value: paymentStatusLate}
	PaymentStatusPending = PaymentStatus{value: paymentStatusPending}
)

var validPaymentStatuses = map[string]PaymentStatus{
	paymentStatusPaid:    PaymentStatusPaid,
	paymentStatusLate:    PaymentStatusLate,
	paymentStatusPending: PaymentStatusPending,
}

// NewPaymentStatus creates a PaymentStatus from a raw string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	v, ok := validPaymentStatuses[s]
	if !ok {
		return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s PaymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s PaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s PaymentStatus) Equal(other PaymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// CollectionCaseStatus – immutable value object
// ---------------------------------------------------------------------------

// CollectionCaseStatus represents the lifecycle stage of a collections case.
type CollectionCaseStatus struct {
	value string
}

const (
	collectionStatusOpen       = "open"
	collectionStatusInProgress = "in_progress"
	collectionStatusResolved   = "resolved"
	collectionStatusClosed     = "closed"
)

var (
	CollectionCaseStatusOpen       = CollectionCaseStatus{value: collectionStatusOpen}
	CollectionCaseStatusInProgress = CollectionCaseStatus{value: collectionStatusInProgress}
	CollectionCaseStatusResolved   = CollectionCaseStatus{value: collectionStatusResolved}
	CollectionCaseStatusClosed     = CollectionCaseStatus{value: collectionStatusClosed}
)

var validCollectionCaseStatuses = map[string]CollectionCaseStatus{
	collectionStatusOpen:       CollectionCaseStatusOpen,
	collectionStatusInProgress: CollectionCaseStatusInProgress,
	collectionStatusResolved:   CollectionCaseStatusResolved,
	collectionStatusClosed:     CollectionCaseStatusClosed,
}

// NewCollectionCaseStatus creates a CollectionCaseStatus from a raw string.
func NewCollectionCaseStatus(s string) (CollectionCaseStatus, error) {
	v, ok := validCollectionCaseStatuses[s]
	if !ok {
		return CollectionCaseStatus{}, fmt.Errorf("invalid collection case status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s CollectionCaseStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s CollectionCaseStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s CollectionCaseStatus) Equal(other CollectionCaseStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// KYCStatus – immutable value object
// ---------------------------------------------------------------------------

// KYCStatus represents the verification stage of a borrower's KYC documents.
type KYCStatus struct {
	value string
}

const (
	kycStatusPending   = "pending"
	kycStatusSubmitted = "submitted"
	kycStatusVerified  = "verified"
	kycStatusRejected  = "rejected"
)

var (
	KYCStatusPending   = KYCStatus{value: kycStatusPending}
	KYCStatusSubmitted = KYCStatus{value: kycStatusSubmitted}
	KYCStatusVerified  = KYCStatus{value: kycStatusVerified}
	KYCStatusRejected  = KYCStatus{value: kycStatusRejected}
)

var validKYCStatuses = map[string]KYCStatus{
	kycStatusPending:   KYCStatusPending,
	kycStatusSubmitted: KYCStatusSubmitted,
	kycStatusVerified:  KYCStatusVerified,
	kycStatusRejected:  KYCStatusRejected,
}

// NewKYCStatus creates a KYCStatus from a raw string.
func NewKYCStatus(s string) (KYCStatus, error) {
	v, ok := validKYCStatuses[s]
	if !ok {
		return KYCStatus{}, fmt.Errorf("invalid kyc status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s KYCStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s KYCStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s KYCStatus) Equal(other KYCStatus) bool { return s.value == other.value }

// IsVerified reports whether the borrower's documents have been verified.
func (s KYCStatus) IsVerified() bool { return s.value == kycStatusVerified }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
