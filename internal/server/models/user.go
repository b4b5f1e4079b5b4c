// Package models defines the persistent entities of the contact book service.
package models

import (
	"database/sql"
	"time"
)

// Subscription tiers a user account can be on.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// ValidSubscription reports whether s is one of the known tiers.
func ValidSubscription(s string) bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// User is an account identity record. Email is unique (enforced at the store
// boundary). Token holds the latest issued session token; issuing a new one
// on login replaces it, which invalidates the previous session. PasswordHash
// never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Subscription string
	Token        sql.NullString
	CreatedAt    time.Time
}
