package identity

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterRequest bootstraps a new organization together with its admin user
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	OrgName   string `json:"org_name" binding:"required,min=1,max=200"`
	OrgSlug   string `json:"org_slug" binding:"required,min=1,max=100,slug"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserResponse    `json:"user"`
}

// MeResponse is the current user together with their organization
type MeResponse struct {
	User         UserResponse         `json:"user"`
	Organization OrganizationResponse `json:"organization"`
}

// CreateUserRequest creates a user inside the caller's organization
type CreateUserRequest struct {
	Email     string        `json:"email" binding:"required,email,max=255"`
	Password  string        `json:"password" binding:"required,min=6,max=72"`
	FirstName string        `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string        `json:"last_name" binding:"required,min=1,max=100"`
	Role      identity.Role `json:"role" binding:"required,oneof=admin manager employee"`
}

// UpdateUserRequest applies a partial update; a supplied password is re-hashed
type UpdateUserRequest struct {
	Email     *string        `json:"email" binding:"omitempty,email,max=255"`
	Password  *string        `json:"password" binding:"omitempty,min=6,max=72"`
	FirstName *string        `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string        `json:"last_name" binding:"omitempty,min=1,max=100"`
	Role      *identity.Role `json:"role" binding:"omitempty,oneof=admin manager employee"`
	IsActive  *bool          `json:"is_active"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin manager employee"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	TenantID  uuid.UUID     `json:"tenant_id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Role      identity.Role `json:"role"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// UpdateOrganizationRequest applies a partial update to an organization
type UpdateOrganizationRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Slug     *string `json:"slug" binding:"omitempty,min=1,max=100,slug"`
	IsActive *bool   `json:"is_active"`
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain Users to UserResponses
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// ToOrganizationResponse converts a domain Organization to OrganizationResponse
func ToOrganizationResponse(o *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
