package models

import "time"

// Contact is a phone book entry owned by a single user.
type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Favorite  bool
	CreatedAt time.Time
}
