package models

import "time"

// RecoveryRequest binds an email to a one-time activation link.
// At most one outstanding request per email; redeemed or expired requests
// are deleted, never updated in place.
type RecoveryRequest struct {
	Email          string    `bson:"email"`
	ActivationLink string    `bson:"activation_link"`
	IssuedAt       time.Time `bson:"issued_at"`
}
