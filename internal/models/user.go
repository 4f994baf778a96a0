package models

import (
	"time"
)

// Role is the privilege level carried by every authenticated principal.
// Roles are totally ordered: user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Level ranks roles for privilege comparison. Unknown roles rank below
// user so a corrupted claim never gains access.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleModerator:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	return r.Level() > 0
}

// CanModerate reports whether the role may mutate resources it does not own.
func (r Role) CanModerate() bool {
	return r.Level() >= RoleModerator.Level()
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated principal attached to a request by the auth
// middleware. It is all the authorizer needs to make a decision.
type Actor struct {
	ID   uint
	Role Role
}

type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required"`
}
