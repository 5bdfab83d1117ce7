package dto

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantResponse struct {
	ID        uuid.UUID     `json:"id"`
	GameID    uuid.UUID     `json:"gameId"`
	UserID    string        `json:"userId"`
	Role      string        `json:"role"`
	Status    string        `json:"status"`
	Message   *string       `json:"message,omitempty"`
	User      *OwnerSummary `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type AddParticipantRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type UpdateParticipantRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type ApplyToGameRequest struct {
	Message string `json:"message"`
}

// InviteToGameRequest needs either UserID or Email.
type InviteToGameRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type RespondToInvitationRequest struct {
	Action string `json:"action"` // accept | reject
}

type RespondToApplicationRequest struct {
	Status string `json:"status"` // approved | rejected
}
