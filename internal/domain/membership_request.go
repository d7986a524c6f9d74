package domain

import "time"

// RequestStatus enumerates lifecycle states for membership requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsTerminal reports whether the status admits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// MembershipRequest is one applicant's club-entry application. It references
// the User that created it; a user may accumulate historical requests but
// each request belongs to exactly one user.
type MembershipRequest struct {
	ID                    int64
	UserID                int64
	TrainingGoals         []string
	ShortTermGoals        *string
	MidTermGoals          *string
	LongTermGoals         *string
	TrainingDaysPerWeek   *int
	HasTrainedWithStryd   bool
	HasStructuredTraining bool
	DiscoveryMethod       *string
	IsAlreadyMember       bool
	Status                RequestStatus
	CreatedAt             time.Time
}

// ApplicantSummary is the user projection shown on the admin review surface.
type ApplicantSummary struct {
	FullName string
	Email    string
	IDCard   string
}

// PendingRequest is a membership request joined with its applicant.
type PendingRequest struct {
	RequestID int64
	Status    RequestStatus
	CreatedAt time.Time
	Applicant ApplicantSummary
}
