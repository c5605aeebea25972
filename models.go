package subscribers

import (
	"time"

	"github.com/uptrace/bun"
)

// Subscriber is a mailing list member. Records are created through the
// public signup endpoint and managed by operators with enough authority.
type Subscriber struct {
	bun.BaseModel `bun:"table:subscribers,alias:sub"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	Name          string     `bun:"real_name" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// User is an operator account. Every protected action is gated by the
// account's Authority against the action's required authority.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Authority     int16      `bun:"authority,notnull" json:"authority"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// DefaultAuthority is assigned to accounts created without an explicit
// authority value.
const DefaultAuthority int16 = 1

// UserResponse is the safe projection of a User. It is the only shape
// handed back to HTTP callers; the password hash never leaves the service.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Authority int16      `json:"authority"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Sanitize strips the password hash from a user record.
func (u *User) Sanitize() *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Authority: u.Authority,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SanitizeUsers maps a list of users to their safe projections.
func SanitizeUsers(users []*User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitize())
	}
	return out
}
