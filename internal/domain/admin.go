package domain

import "time"

// CommunityAdmin grants one email administrative rights over one community.
// Super admins are configured via allow-list and never stored as rows.
type CommunityAdmin struct {
	AdminID     string    `json:"id" dynamodbav:"admin_id"`
	CommunityID string    `json:"community_id" dynamodbav:"community_id"`
	AdminEmail  string    `json:"admin_email" dynamodbav:"admin_email"`
	AdminName   string    `json:"admin_name" dynamodbav:"admin_name"`
	AssignedBy  string    `json:"assigned_by" dynamodbav:"assigned_by"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateAdminRequest struct {
	AdminEmail string `json:"admin_email" validate:"required,email,max=100"`
	AdminName  string `json:"admin_name" validate:"required,max=200"`
}

// UserRoles summarises the caller's privileges for the frontend.
type UserRoles struct {
	IsSuperAdmin      bool     `json:"is_super_admin"`
	AdminCommunityIDs []string `json:"admin_community_ids"`
}
