// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ActiveStatus is the backend's publication flag for a post.
type ActiveStatus string

const (
	ActiveYes ActiveStatus = "Yes"
	ActiveNo  ActiveStatus = "No"
)

// Post represents a blog post with its embedded author and category as
// the backend returns them. Copies held by views are transient and
// possibly stale; they are never cached across views.
type Post struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Content    *string      `json:"content"` // Nullable on the backend
	UserID     int64        `json:"user_id"`
	CategoryID int64        `json:"category_id"`
	IsActive   ActiveStatus `json:"is_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	User     User     `json:"user"`
	Category Category `json:"category"`
}

// Active returns true if the post is published.
func (p Post) Active() bool {
	return p.IsActive == ActiveYes
}

// Excerpt returns the post content truncated to max runes, with an
// ellipsis when truncation happened. Nil content yields "".
func (p Post) Excerpt(max int) string {
	if p.Content == nil {
		return ""
	}
	runes := []rune(*p.Content)
	if len(runes) <= max {
		return *p.Content
	}
	return string(runes[:max]) + "..."
}
