package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCaptain = "captain"
	RoleCoach   = "coach"
	RolePlayer  = "player"

	MemberActive   = "active"
	MemberPending  = "pending"
	MemberInactive = "inactive"
)

type Team struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	ShareCode   string    `db:"share_code"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TeamWithRole is a team seen from one member.
type TeamWithRole struct {
	Team

	MemberRole  string `db:"member_role"`
	MemberCount int    `db:"member_count"`
}

type TeamMember struct {
	ID        uuid.UUID `db:"id"`
	TeamID    uuid.UUID `db:"team_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// CanManage reports whether the member may change the roster.
func (m *TeamMember) CanManage() bool {
	return m.Status == MemberActive && (m.Role == RoleCaptain || m.Role == RoleCoach)
}

type TeamMemberWithUser struct {
	TeamMember

	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}
