package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]*models.Company)}
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.Email == company.Email {
			return common.DuplicateKeyError("company")
		}
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return nil, common.NotFoundError("company")
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetByEmail(ctx context.Context, email string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, common.NotFoundError("company")
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) ListIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for id := range f.companies {
		ids = append(ids, id)
	}
	return ids, nil
}

// revocableCache keeps SetString values so revocation round-trips in tests.
type revocableCache struct {
	fakeCacheService
	mu     sync.Mutex
	values map[string]string
}

func newRevocableCache() *revocableCache {
	return &revocableCache{values: make(map[string]string)}
}

func (c *revocableCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *revocableCache) GetString(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func validCompany() *models.Company {
	return &models.Company{
		Name:      "Acme Retail",
		Email:     "ops@acme.example",
		GSTNumber: "22AAAAA0000A1Z5",
		Phone:     "+911234567890",
	}
}

func TestCompanyRegisterAndLogin(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo, newRevocableCache(), newFakeMediaService(), "test-secret", time.Hour)

	company, token, err := svc.Register(context.Background(), validCompany(), "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, uuid.Nil, company.ID)
	assert.NotEqual(t, "hunter22", company.PasswordHash)

	t.Run("token carries the company id", func(t *testing.T) {
		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, company.ID.String(), claims.Subject)
	})

	t.Run("login succeeds with the right password", func(t *testing.T) {
		loggedIn, loginToken, err := svc.Login(context.Background(), company.Email, "hunter22")
		require.NoError(t, err)
		assert.Equal(t, company.ID, loggedIn.ID)
		assert.NotEmpty(t, loginToken)
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		_, _, errBadPass := svc.Login(context.Background(), company.Email, "wrong")
		_, _, errBadEmail := svc.Login(context.Background(), "nobody@acme.example", "hunter22")
		require.Error(t, errBadPass)
		require.Error(t, errBadEmail)
		assert.Equal(t, errBadPass.Error(), errBadEmail.Error())
	})

	t.Run("invalid gst number rejected", func(t *testing.T) {
		bad := validCompany()
		bad.Email = "other@acme.example"
		bad.GSTNumber = "short"
		_, _, err := svc.Register(context.Background(), bad, "hunter22")
		assert.Equal(t, common.KindInvalidInput, common.KindOf(err))
	})
}

func TestCompanyLogoutRevokesToken(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo, newRevocableCache(), newFakeMediaService(), "test-secret", time.Hour)

	tokenID := uuid.NewString()

	revoked, err := svc.IsTokenRevoked(context.Background(), tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	err = svc.Logout(context.Background(), tokenID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	revoked, err = svc.IsTokenRevoked(context.Background(), tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestCompanyLogoutExpiredTokenIsNoop(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo(), newRevocableCache(), newFakeMediaService(), "test-secret", time.Hour)

	err := svc.Logout(context.Background(), uuid.NewString(), time.Now().Add(-time.Minute))
	assert.NoError(t, err)
}

func TestCompanyUploadLogo(t *testing.T) {
	repo := newFakeCompanyRepo()
	media := newFakeMediaService()
	svc := NewCompanyService(repo, newRevocableCache(), media, "test-secret", time.Hour)

	company, _, err := svc.Register(context.Background(), validCompany(), "hunter22")
	require.NoError(t, err)

	url, err := svc.UploadLogo(context.Background(), company.ID, strings.NewReader("jpegbytes"), 9)
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	stored, err := repo.GetByID(context.Background(), company.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LogoURL)
	assert.Equal(t, url, *stored.LogoURL)
	assert.Contains(t, media.objects, "company-logos/"+company.ID.String()+"/logo.jpg")
}
