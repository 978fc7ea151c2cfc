package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appidentity "github.com/bizgrid/backend/internal/application/identity"
	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrgRepo struct {
	orgs map[uuid.UUID]*identity.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[uuid.UUID]*identity.Organization)}
}

func (r *fakeOrgRepo) Save(_ context.Context, org *identity.Organization) error {
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return org, nil
}

func (r *fakeOrgRepo) FindBySlug(_ context.Context, slug string) (*identity.Organization, error) {
	for _, org := range r.orgs {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrgRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, org := range r.orgs {
		if org.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrgRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orgs, id)
	return nil
}

func newOrgTestServer(t *testing.T, tenantID uuid.UUID, repo *fakeOrgRepo) *gin.Engine {
	t.Helper()
	middleware.SetupValidator()
	svc := appidentity.NewOrganizationService(repo, zap.NewNop())
	h := NewOrganizationHandler(svc)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID.String())
		c.Set(middleware.JWTUserIDKey, uuid.New().String())
	})
	engine.GET("/orgs/current", h.GetCurrent)
	engine.PATCH("/orgs/:id", h.Update)
	engine.DELETE("/orgs/:id", h.Delete)
	return engine
}

func seedOrg(t *testing.T, repo *fakeOrgRepo) *identity.Organization {
	t.Helper()
	org, err := identity.NewOrganization("Acme Corp", "acme-corp")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), org))
	return org
}

func TestOrganizationGetCurrent(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orgs/current", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acme-corp")
}

func TestOrganizationUpdateOwnOrg(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orgs/"+org.ID.String(), strings.NewReader(`{"name":"Acme Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Renamed")
}

func TestOrganizationUpdateForeignOrgForbidden(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orgs/"+uuid.New().String(), strings.NewReader(`{"name":"Hijack"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Acme Corp", repo.orgs[org.ID].Name)
}

func TestOrganizationUpdateInvalidID(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orgs/not-a-uuid", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizationDeleteForeignOrgForbidden(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/orgs/"+uuid.New().String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, repo.orgs, 1)
}

func TestOrganizationDeleteOwnOrg(t *testing.T) {
	repo := newFakeOrgRepo()
	org := seedOrg(t, repo)
	engine := newOrgTestServer(t, org.ID, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/orgs/"+org.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
