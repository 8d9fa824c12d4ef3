package models

import (
	"strings"
	"time"
)

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagName returns name the way tags are stored and looked up.
func TagName(name string) string {
	return strings.TrimSpace(name)
}
