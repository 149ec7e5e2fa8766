package models

import "time"

// EventCompact is the event projection attached to comments
type EventCompact struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Schedule time.Time `json:"schedule"`
}
