package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"stockcast/internal/caching"
	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const companyLogoBucket = "company-logos"

type CompanyService interface {
	Register(ctx context.Context, company *models.Company, password string) (*models.Company, string, error)
	Login(ctx context.Context, email, password string) (*models.Company, string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Profile(ctx context.Context, companyID uuid.UUID) (*models.Company, error)
	UploadLogo(ctx context.Context, companyID uuid.UUID, reader io.Reader, size int64) (string, error)
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type companyService struct {
	companyRepo repositories.CompanyRepository
	cacheSvc    caching.CacheService
	mediaSvc    MediaService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewCompanyService(companyRepo repositories.CompanyRepository, cacheSvc caching.CacheService, mediaSvc MediaService, jwtSecret string, tokenTTL time.Duration) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		cacheSvc:    cacheSvc,
		mediaSvc:    mediaSvc,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

func (s *companyService) Register(ctx context.Context, company *models.Company, password string) (*models.Company, string, error) {
	if err := common.ValidateRequiredString(company.Name, "company_name"); err != nil {
		return nil, "", err
	}
	if err := common.ValidateRequiredString(company.Email, "company_email"); err != nil {
		return nil, "", err
	}
	if err := common.ValidateRequiredString(password, "password"); err != nil {
		return nil, "", err
	}
	if err := common.ValidateRequiredString(company.Phone, "phone_no"); err != nil {
		return nil, "", err
	}
	if err := common.ValidateGSTNumber(company.GSTNumber, "gst_number"); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	company.ID = uuid.New()
	company.PasswordHash = string(hash)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(company.ID)
	if err != nil {
		return nil, "", err
	}
	return company, token, nil
}

func (s *companyService) Login(ctx context.Context, email, password string) (*models.Company, string, error) {
	company, err := s.companyRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and bad password.
		return nil, "", common.InvalidInputError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.InvalidInputError("invalid credentials")
	}

	token, err := s.issueToken(company.ID)
	if err != nil {
		return nil, "", err
	}
	return company, token, nil
}

// Logout parks the token ID in the revocation list until its natural expiry.
func (s *companyService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("stockcast:revoked:%s", tokenID)
	if err := s.cacheSvc.SetString(ctx, key, "1", ttl); err != nil {
		log.Printf("Failed to record token revocation: %v", err)
		return err
	}
	return nil
}

func (s *companyService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := fmt.Sprintf("stockcast:revoked:%s", tokenID)
	val, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func (s *companyService) Profile(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, companyID)
}

func (s *companyService) UploadLogo(ctx context.Context, companyID uuid.UUID, reader io.Reader, size int64) (string, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/logo.jpg", companyID.String())
	if err := s.mediaSvc.Upload(ctx, companyLogoBucket, objectName, reader, size); err != nil {
		return "", err
	}

	url, err := s.mediaSvc.PresignedURL(companyLogoBucket, objectName, 24*time.Hour)
	if err != nil {
		return "", err
	}

	company.LogoURL = &url
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return "", err
	}
	return url, nil
}

func (s *companyService) issueToken(companyID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "stockcast",
		Subject:   companyID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}
