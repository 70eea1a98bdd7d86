// Package models defines the data structures exchanged with the blog
// backend and the core types used throughout the application.
package models

import "time"

// User represents a blog platform account as returned by the backend.
// It is an immutable snapshot taken at login/register or session restore;
// it is not kept in sync with the server afterwards.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanMutate reports whether the user may edit or delete the given post:
// admins may mutate any post, other users only their own. This check is
// advisory (UX only) — the backend enforces authorization on every call.
func (u *User) CanMutate(p *Post) bool {
	if u == nil || p == nil {
		return false
	}
	return u.IsAdmin || u.ID == p.UserID
}
