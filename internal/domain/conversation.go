package domain

import "time"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Turn struct {
	Role    Role
	Content string
}

// HistoryMessage is one platform message as fetched from channel history.
type HistoryMessage struct {
	ID        string
	AuthorID  PrincipalID
	AuthorBot bool
	Content   string
	CreatedAt time.Time
}
