package domain

import "time"

// Profile is an alumni user profile, keyed by the CAS uid.
type Profile struct {
	ProfileID string    `json:"id" dynamodbav:"profile_id"`
	UID       string    `json:"uid" dynamodbav:"uid"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// ProfileView is the API shape of a profile. Identifier details are only
// populated when the requester owns the profile; everyone else gets the count.
type ProfileView struct {
	ProfileID        string           `json:"id"`
	UID              string           `json:"uid"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Identifiers      []IdentifierView `json:"identifiers,omitempty"`
	IdentifiersCount int              `json:"identifiers_count"`
}

// RegisterIdentifiersRequest bulk-registers identifiers on the caller's profile.
type RegisterIdentifiersRequest struct {
	Identifiers []IdentifierInput `json:"identifiers" validate:"required,min=1,dive"`
}
