package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/caching"
	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and JWT token management.
type AuthService interface {
	// Register creates a company and its first (admin) user in one step.
	Register(ctx context.Context, razaoSocial, cnpj, email, password, name string) (*models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	// Logout blacklists the access token and revokes the refresh token.
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// TokenClaims are the JWT claims carried by access tokens.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	cacheSvc    caching.CacheService
	jwtSecret   []byte
	tokenTTL    int // access token TTL in seconds
	refreshTTL  int // refresh token TTL in seconds
}

func NewAuthService(userRepo repositories.UserRepository, companyRepo repositories.CompanyRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cacheSvc:    cacheSvc,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTLSeconds,
		refreshTTL:  refreshTTLSeconds,
	}
}

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

func (s *authService) Register(ctx context.Context, razaoSocial, cnpj, email, password, name string) (*models.TokenPair, error) {
	if razaoSocial == "" || email == "" || name == "" {
		return nil, errors.New("razão social, email and name are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must have at least 8 characters")
	}
	cnpj = common.NormalizeCPFCNPJ(cnpj)
	if len(cnpj) != 14 {
		return nil, errors.New("invalid CNPJ")
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	}
	if _, err := s.companyRepo.GetByCNPJ(ctx, cnpj); err == nil {
		return nil, errors.New("CNPJ already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := &models.Company{
		ID:          uuid.New(),
		RazaoSocial: razaoSocial,
		CNPJ:        cnpj,
		Email:       email,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         "admin",
		Status:       "active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+strings.ToLower(email), loginAttemptLimit, loginAttemptWindow)
	if err == nil && limited {
		return nil, errors.New("too many login attempts, try again later")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user.Status != "active" {
		return nil, errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.generateTokens(ctx, user)
}

func (s *authService) generateTokens(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:    user.ID.String(),
		CompanyID: user.CompanyID.String(),
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "agrodrones-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"agrodrones-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken := generateSecureToken()
	refreshHash := hashToken(refreshToken)
	refreshData := fmt.Sprintf("%s:%s:%d", user.ID, user.CompanyID, now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	// Track the latest refresh token per user so a password change can
	// revoke it. Rotation on refresh keeps the pointer current.
	userKey := fmt.Sprintf("refresh_user:%s", user.ID)
	if err := s.cacheSvc.SetString(ctx, userKey, refreshHash, time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("failed to track refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || tokenData == "" {
		return nil, errors.New("invalid refresh token")
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 3 {
		return nil, errors.New("invalid refresh token data")
	}
	expiry, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, errors.New("refresh token expired")
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, errors.New("invalid user ID in refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: old refresh token is single-use.
	s.cacheSvc.Delete(ctx, cacheKey)
	return s.generateTokens(ctx, user)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := jwtToken.Claims.(*TokenClaims)
	if !ok || !jwtToken.Valid {
		return nil, errors.New("invalid token claims")
	}

	// Reject blacklisted tokens.
	if revoked, _ := s.cacheSvc.GetString(ctx, fmt.Sprintf("token_blacklist:%s", claims.ID)); revoked != "" {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.ValidateToken(ctx, accessToken); err == nil && claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if blErr := s.cacheSvc.SetString(ctx, fmt.Sprintf("token_blacklist:%s", claims.ID), "revoked", ttl); blErr != nil {
				return fmt.Errorf("failed to blacklist token: %w", blErr)
			}
		}
	}
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	return s.cacheSvc.Delete(ctx, cacheKey)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must have at least 8 characters")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	// Revoke the user's live refresh token so stale sessions must log in
	// again with the new password.
	userKey := fmt.Sprintf("refresh_user:%s", userID)
	if refreshHash, err := s.cacheSvc.GetString(ctx, userKey); err == nil && refreshHash != "" {
		s.cacheSvc.Delete(ctx, fmt.Sprintf("refresh_token:%s", refreshHash))
		s.cacheSvc.Delete(ctx, userKey)
	}
	return nil
}

// generateSecureToken returns a cryptographically random URL-safe token.
func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
