package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Organization is the tenant boundary. Every other entity in the system
// references an organization through its TenantID.
type Organization struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(200);not null"`
	Slug     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization
func NewOrganization(name, slug string) (*Organization, error) {
	if err := validateOrgName(name); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	return &Organization{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       strings.ToLower(slug),
		IsActive:   true,
	}, nil
}

// Update updates the organization's basic information
func (o *Organization) Update(name string) error {
	if err := validateOrgName(name); err != nil {
		return err
	}
	o.Name = name
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateSlug changes the organization slug
func (o *Organization) UpdateSlug(slug string) error {
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	o.Slug = strings.ToLower(slug)
	o.UpdatedAt = time.Now()
	return nil
}

// SetActive flips the organization's active flag
func (o *Organization) SetActive(active bool) {
	o.IsActive = active
	o.UpdatedAt = time.Now()
}

// ValidateSlug checks that a slug is lowercase alphanumeric groups
// separated by single hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug must contain only lowercase letters, numbers and hyphens")
	}
	return nil
}

func validateOrgName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}
