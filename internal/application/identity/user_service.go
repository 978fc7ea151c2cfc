package identity

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// UserService handles user management within one organization
type UserService struct {
	userRepo   identity.UserRepository
	hasher     auth.PasswordHasher
	blacklist  auth.TokenBlacklist
	sessionTTL time.Duration
}

// NewUserService creates a new UserService. sessionTTL bounds how long a
// user-level token invalidation entry has to outlive the longest-lived token.
func NewUserService(userRepo identity.UserRepository, hasher auth.PasswordHasher, blacklist auth.TokenBlacklist, sessionTTL time.Duration) *UserService {
	return &UserService{
		userRepo:   userRepo,
		hasher:     hasher,
		blacklist:  blacklist,
		sessionTTL: sessionTTL,
	}
}

// Create creates a new user in the organization
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tenantID, req.Email, passwordHash, req.FirstName, req.LastName, req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
		}
		if err := user.UpdateEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		user.UpdateProfile(firstName, lastName)
	}

	revokeSessions := false

	if req.Password != nil {
		passwordHash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		if err := user.SetPasswordHash(passwordHash); err != nil {
			return nil, err
		}
		revokeSessions = true
	}

	if req.Role != nil {
		if *req.Role != user.Role {
			revokeSessions = true
		}
		if err := user.ChangeRole(*req.Role); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if user.IsActive && !*req.IsActive {
			revokeSessions = true
		}
		user.SetActive(*req.IsActive)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	// Already-issued tokens embed the old credentials; reject everything
	// issued before this point.
	if revokeSessions {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.sessionTTL); err != nil {
			return nil, err
		}
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete hard-deletes a user
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.DeleteForTenant(ctx, tenantID, userID)
}
