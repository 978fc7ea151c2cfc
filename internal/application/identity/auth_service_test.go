package identity

import (
	"context"
	"testing"
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailGlobal(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// MockOrganizationRepository is a mock implementation of identity.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*identity.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAuthService(userRepo *MockUserRepository, orgRepo *MockOrganizationRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "bizgrid-test",
	})
	return NewAuthService(
		userRepo,
		orgRepo,
		jwtService,
		auth.NewBcryptHasher(),
		auth.NewInMemoryTokenBlacklist(),
		nil,
		zap.NewNop(),
	)
}

func newTestUser(t *testing.T, hasher auth.PasswordHasher, password string) *identity.User {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	user, err := identity.NewUser(uuid.New(), "owner@acme.test", hash, "Ada", "Lovelace", identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	req := RegisterRequest{
		Email:     "owner@acme.test",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		OrgName:   "Acme Corp",
		OrgSlug:   "acme-corp",
	}

	t.Run("creates organization and admin user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)

		orgRepo.On("ExistsBySlug", ctx, "acme-corp").Return(false, nil)
		orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := service.Register(ctx, req)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.Equal(t, "owner@acme.test", result.User.Email)
		assert.Equal(t, identity.RoleAdmin, result.User.Role)
		orgRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects taken slug", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)

		orgRepo.On("ExistsBySlug", ctx, "acme-corp").Return(true, nil)

		_, err := service.Register(ctx, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rolls back organization when user save fails", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)

		orgRepo.On("ExistsBySlug", ctx, "acme-corp").Return(false, nil)
		orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(assert.AnError)
		orgRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

		_, err := service.Register(ctx, req)

		require.Error(t, err)
		orgRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher()

	t.Run("returns token pair for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)

		result, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "wrong"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("rejects unknown email with the same error as wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)

		userRepo.On("FindByEmailGlobal", ctx, "nobody@acme.test").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "nobody@acme.test", Password: "secret123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")
		user.SetActive(false)

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}

func TestAuthService_LogoutAndRefresh(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher()

	t.Run("refresh issues a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)
		userRepo.On("FindByIDForTenant", ctx, user.TenantID, user.ID).Return(user, nil)

		login, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})
		require.NoError(t, err)

		refreshed, err := service.Refresh(ctx, RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Tokens.AccessToken)
	})

	t.Run("refresh rejects a deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)
		login, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})
		require.NoError(t, err)

		user.SetActive(false)
		userRepo.On("FindByIDForTenant", ctx, user.TenantID, user.ID).Return(user, nil)

		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: login.Tokens.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("refresh rejects garbage tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)

		_, err := service.Refresh(ctx, RefreshRequest{RefreshToken: "not-a-token"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("logout blacklists the access token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		orgRepo := new(MockOrganizationRepository)
		service := newTestAuthService(userRepo, orgRepo)
		user := newTestUser(t, hasher, "secret123")

		userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)
		login, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})
		require.NoError(t, err)

		claims, err := service.jwt.ValidateAccessToken(login.Tokens.AccessToken)
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, claims))

		blacklisted, err := service.blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher()

	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newTestAuthService(userRepo, orgRepo)
	user := newTestUser(t, hasher, "secret123")
	org, err := identity.NewOrganization("Acme Corp", "acme-corp")
	require.NoError(t, err)
	org.ID = user.TenantID

	userRepo.On("FindByEmailGlobal", ctx, "owner@acme.test").Return(user, nil)
	login, err := service.Login(ctx, LoginRequest{Email: "owner@acme.test", Password: "secret123"})
	require.NoError(t, err)

	claims, err := service.jwt.ValidateAccessToken(login.Tokens.AccessToken)
	require.NoError(t, err)

	userRepo.On("FindByIDForTenant", ctx, user.TenantID, user.ID).Return(user, nil)
	orgRepo.On("FindByID", ctx, user.TenantID).Return(org, nil)

	me, err := service.Me(ctx, claims)

	require.NoError(t, err)
	assert.Equal(t, user.ID, me.User.ID)
	assert.Equal(t, "acme-corp", me.Organization.Slug)
}
