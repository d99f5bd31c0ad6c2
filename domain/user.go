package domain

import (
	"encoding/json"
	"time"
)

// User roles ordered from most to least privileged.
const (
	RoleAdmin       = "admin"
	RoleModerator   = "moderator"
	RoleContributor = "contributor"
	RoleViewer      = "viewer"
)

// User represents an authenticated identity in the platform.
// PasswordHash never serializes.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Region       string     `json:"region,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// PublicUser is the subset of user fields safe to return from auth endpoints.
type PublicUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Region    string     `json:"region,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Public strips credentials and flags from a user record.
func (u *User) Public() PublicUser {
	if u == nil {
		return PublicUser{}
	}
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		Region:    u.Region,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// Contribution review statuses.
const (
	ContributionStatusPending  = "pending"
	ContributionStatusApproved = "approved"
	ContributionStatusRejected = "rejected"
)

// UserContribution is a user-submitted data point awaiting review.
type UserContribution struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	ContributionType string          `json:"contribution_type"`
	Content          json.RawMessage `json:"content"`
	Status           string          `json:"status"`
	Verified         bool            `json:"verified"`
	CreatedAt        time.Time       `json:"created_at"`
	ReviewedAt       *time.Time      `json:"reviewed_at,omitempty"`
	ReviewedBy       string          `json:"reviewed_by,omitempty"`
}
