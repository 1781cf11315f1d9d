package domain

import "time"

// Platform types a community can live on.
const (
	PlatformDiscord  = "discord"
	PlatformWhatsApp = "whatsapp"
	PlatformTelegram = "telegram"
	PlatformSlack    = "slack"
	PlatformOther    = "other"
)

// Community is an alumni community on an external chat platform.
type Community struct {
	CommunityID       string    `json:"id" dynamodbav:"community_id"`
	Name              string    `json:"name" dynamodbav:"name"`
	Description       string    `json:"description" dynamodbav:"description"`
	PlatformType      string    `json:"platform_type" dynamodbav:"platform_type"`
	Tags              []string  `json:"tags" dynamodbav:"tags"`
	MemberCount       int       `json:"member_count" dynamodbav:"member_count"`
	InviteLink        string    `json:"invite_link,omitempty" dynamodbav:"invite_link"`
	IdentifierFormat  string    `json:"identifier_format_instruction" dynamodbav:"identifier_format"`
	IconURL           string    `json:"icon_url,omitempty" dynamodbav:"icon_url"`
	CreatedAt         time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// CommunityView wraps a community with the caller's admin status.
type CommunityView struct {
	Community
	UserIsAdmin bool `json:"user_is_admin"`
}

type CreateCommunityRequest struct {
	Name             string   `json:"name" validate:"required,min=3,max=100"`
	Description      string   `json:"description" validate:"required,min=10,max=500"`
	PlatformType     string   `json:"platform_type" validate:"required,oneof=discord whatsapp telegram slack other"`
	Tags             []string `json:"tags" validate:"dive,max=50"`
	MemberCount      int      `json:"member_count" validate:"gte=0,lte=100000"`
	InviteLink       string   `json:"invite_link" validate:"omitempty,max=500"`
	IdentifierFormat string   `json:"identifier_format_instruction" validate:"required,min=10,max=1000"`
}

type UpdateCommunityRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=3,max=100"`
	Description      *string   `json:"description" validate:"omitempty,min=10,max=500"`
	PlatformType     *string   `json:"platform_type" validate:"omitempty,oneof=discord whatsapp telegram slack other"`
	Tags             *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	MemberCount      *int      `json:"member_count" validate:"omitempty,gte=0,lte=100000"`
	InviteLink       *string   `json:"invite_link" validate:"omitempty,max=500"`
	IdentifierFormat *string   `json:"identifier_format_instruction" validate:"omitempty,min=10,max=1000"`
}

// CommunityFilter narrows and orders community listings.
type CommunityFilter struct {
	Search   string // substring match on name/description
	Platform string
	Tag      string
	SortBy   string // "name" (default) | "member_count" | "created_at"
}
