package identity

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationService handles operations on the caller's own organization.
// Callers can never read or mutate another organization: handlers gate the
// target ID against the token's tenant claim before the service runs.
type OrganizationService struct {
	orgRepo identity.OrganizationRepository
	logger  *zap.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgRepo identity.OrganizationRepository, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

// GetCurrent returns the caller's organization
func (s *OrganizationService) GetCurrent(ctx context.Context, tenantID uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToOrganizationResponse(org)
	return &response, nil
}

// Update applies a partial update to the organization
func (s *OrganizationService) Update(ctx context.Context, orgID uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := org.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != org.Slug {
		exists, err := s.orgRepo.ExistsBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization slug is already taken")
		}
		if err := org.UpdateSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		org.SetActive(*req.IsActive)
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	response := ToOrganizationResponse(org)
	return &response, nil
}

// Delete hard-deletes the organization
func (s *OrganizationService) Delete(ctx context.Context, orgID uuid.UUID) error {
	if err := s.orgRepo.Delete(ctx, orgID); err != nil {
		return err
	}
	s.logger.Info("Organization deleted", zap.String("org_id", orgID.String()))
	return nil
}
