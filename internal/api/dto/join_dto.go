package dto

import (
	"time"

	"github.com/spec-kit/club-service/internal/domain"
)

// JoinResponse acknowledges a membership application.
type JoinResponse struct {
	Message  string  `json:"message"`
	UserID   int64   `json:"userId"`
	PhotoKey *string `json:"photoKey,omitempty"`
}

// DecideRequest is the admin decision payload.
type DecideRequest struct {
	RequestID int64  `json:"requestId"`
	Action    string `json:"action"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// PendingRequestResponse is one row of the admin review queue.
type PendingRequestResponse struct {
	RequestID int64     `json:"requestId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	IDCard    string    `json:"idCard"`
}

// NewPendingRequestResponse maps a pending request with its applicant.
func NewPendingRequestResponse(req domain.PendingRequest) PendingRequestResponse {
	return PendingRequestResponse{
		RequestID: req.RequestID,
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
		FullName:  req.Applicant.FullName,
		Email:     req.Applicant.Email,
		IDCard:    req.Applicant.IDCard,
	}
}

// UploadResponse returns the key of a stored file.
type UploadResponse struct {
	Key string `json:"key"`
}
