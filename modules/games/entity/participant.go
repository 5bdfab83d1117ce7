package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner     = "owner"
	RolePlayer    = "player"
	RoleInvited   = "invited"
	RoleApplicant = "applicant"

	ParticipantApproved = "approved"
	ParticipantRejected = "rejected"
	ParticipantPending  = "pending"
)

type GameParticipant struct {
	ID        uuid.UUID `db:"id"`
	GameID    uuid.UUID `db:"game_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	Message   *string   `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *GameParticipant) IsPendingInvitation() bool {
	return p.Role == RoleInvited && p.Status == ParticipantPending
}

func (p *GameParticipant) IsPendingApplication() bool {
	return p.Role == RoleApplicant && p.Status == ParticipantPending
}

type ParticipantWithUser struct {
	GameParticipant

	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}
