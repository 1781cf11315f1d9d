package domain

import "time"

// Identifier is one hashed identifier row owned by a profile. The plaintext
// value is never stored; only the one-way digest survives the request.
type Identifier struct {
	IdentifierID string    `json:"id" dynamodbav:"identifier_id"`
	ProfileID    string    `json:"profile_id" dynamodbav:"profile_id"`
	Label        string    `json:"label" dynamodbav:"label"`
	Hash         string    `json:"-" dynamodbav:"hash"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// IdentifierView is the API shape of an identifier. The hash never leaves
// the backend.
type IdentifierView struct {
	IdentifierID string    `json:"id"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
}

// IdentifierInput is a single identifier supplied by its owner.
type IdentifierInput struct {
	Label string `json:"label" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=200"`
}

// VerifyIdentifierRequest asks whether any stored identifier matches the
// candidate value. CommunityID optionally scopes the admin permission check.
type VerifyIdentifierRequest struct {
	Identifier  string `json:"identifier" validate:"required,max=200"`
	CommunityID string `json:"community_id"`
}

// VerifyIdentifierResult is the match outcome. Name and Email are only set
// when a match was found.
type VerifyIdentifierResult struct {
	Found bool   `json:"found"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
