package identity

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/bizgrid/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo  identity.UserRepository
	orgRepo   identity.OrganizationRepository
	jwt       *auth.JWTService
	hasher    auth.PasswordHasher
	blacklist auth.TokenBlacklist
	metrics   *telemetry.BusinessMetrics
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. metrics may be nil.
func NewAuthService(
	userRepo identity.UserRepository,
	orgRepo identity.OrganizationRepository,
	jwt *auth.JWTService,
	hasher auth.PasswordHasher,
	blacklist auth.TokenBlacklist,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		jwt:       jwt,
		hasher:    hasher,
		blacklist: blacklist,
		metrics:   metrics,
		logger:    logger,
	}
}

// Register creates a new organization and its first admin user, then
// issues a token pair for the admin.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.orgRepo.ExistsBySlug(ctx, req.OrgSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization slug is already taken")
	}

	org, err := identity.NewOrganization(req.OrgName, req.OrgSlug)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(org.ID, req.Email, passwordHash, req.FirstName, req.LastName, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Roll back the orphaned organization so the slug frees up again.
		if delErr := s.orgRepo.Delete(ctx, org.ID); delErr != nil {
			s.logger.Error("Failed to roll back organization after user save failure",
				zap.String("org_id", org.ID.String()), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Organization registered",
		zap.String("org_id", org.ID.String()),
		zap.String("slug", org.Slug))

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email across organizations
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmailGlobal(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account has been deactivated")
	}

	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, user.TenantID)
	}
	return s.issueTokens(ctx, user)
}

// Logout blacklists the presented token's JTI until its natural expiry
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// Refresh verifies a refresh token and issues a fresh pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Token has been revoked")
	}

	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	// Re-load the user so a deactivation or role change takes effect on refresh.
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account has been deactivated")
	}

	return s.issueTokens(ctx, user)
}

// Me returns the current user together with their organization
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (*MeResponse, error) {
	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid token claims")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid token claims")
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{
		User:         ToUserResponse(user),
		Organization: ToOrganizationResponse(org),
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*AuthResponse, error) {
	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Tokens: tokens,
		User:   ToUserResponse(user),
	}, nil
}
