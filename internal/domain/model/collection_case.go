package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CollectionCase entity
// ---------------------------------------------------------------------------

// CollectionCase tracks collections activity for a chronically delinquent
// loan. At most one case exists per loan; creation is idempotent on loanID.
type CollectionCase struct {
	id             string
	loanID         string
	reason         string
	daysDelinquent int
	status         valueobject.CollectionCaseStatus
	assignedTo     string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCollectionCase creates a new case in open status.
func NewCollectionCase(loanID, reason string, daysDelinquent int, now time.Time) (CollectionCase, error) {
	if loanID == "" {
		return CollectionCase{}, errors.New("loan ID is required")
	}
	return CollectionCase{
		id:             uuid.New().String(),
		loanID:         loanID,
		reason:         reason,
		daysDelinquent: daysDelinquent,
		status:         valueobject.CollectionCaseStatusOpen,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructCollectionCase rebuilds from persistence.
func ReconstructCollectionCase(
	id, loanID, reason string,
	daysDelinquent int,
	status valueobject.CollectionCaseStatus,
	assignedTo string,
	createdAt, updatedAt time.Time,
) CollectionCase {
	return CollectionCase{
		id:             id,
		loanID:         loanID,
		reason:         reason,
		daysDelinquent: daysDelinquent,
		status:         status,
		assignedTo:     assignedTo,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Assign sets an agent and transitions to in_progress if currently open.
func (c CollectionCase) Assign(agentID string, now time.Time) (CollectionCase, error) {
	if agentID == "" {
		return c, errors.New("agent ID is required")
	}
	next := c
	next.assignedTo = agentID
	next.updatedAt = now
	if c.status.Equal(valueobject.CollectionCaseStatusOpen) {
		next.status = valueobject.CollectionCaseStatusInProgress
	}
	return next, nil
}

// Resolve transitions open or in_progress -> resolved.
func (c CollectionCase) Resolve(now time.Time) (CollectionCase, error) {
	if !c.status.Equal(valueobject.CollectionCaseStatusOpen) && !c.status.Equal(valueobject.CollectionCaseStatusInProgress) {
		return c, valueobject.ErrInvalidStatusTransition
	}
	next := c
	next.status = valueobject.CollectionCaseStatusResolved
	next.updatedAt = now
	return next, nil
}

func (c CollectionCase) ID() string                               { return c.id }
func (c CollectionCase) LoanID() string                           { return c.loanID }
func (c CollectionCase) Reason() string                           { return c.reason }
func (c CollectionCase) DaysDelinquent() int                      { return c.daysDelinquent }
func (c CollectionCase) Status() valueobject.CollectionCaseStatus { return c.status }
func (c CollectionCase) AssignedTo() string                       { return c.assignedTo }
func (c CollectionCase) CreatedAt() time.Time                     { return c.createdAt }
func (c CollectionCase) UpdatedAt() time.Time                     { return c.updatedAt }
