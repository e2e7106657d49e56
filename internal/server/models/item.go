package models

import "time"

// Item is a record owned by exactly one user. UserID never changes after
// creation.
type Item struct {
	ID          string
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
}

// ItemPatch carries an item update. Empty fields are left unchanged.
type ItemPatch struct {
	Title       string
	Description string
}

// Apply copies the non-empty fields of p onto it.
func (p ItemPatch) Apply(it *Item) {
	if p.Title != "" {
		it.Title = p.Title
	}
	if p.Description != "" {
		it.Description = p.Description
	}
}
