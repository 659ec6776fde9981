package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/auth"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TokenTypeBearer is the token_type reported with every issued token
const TokenTypeBearer = "bearer"

var errAlreadyRegistered = shared.NewDomainError("ALREADY_EXISTS", "Username or email already registered")

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Failed attempts before the account locks
	LockDuration     time.Duration // How long a lock lasts
	AccessTokenTTL   time.Duration
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
		AccessTokenTTL:   30 * time.Minute,
	}
}

// AuthService handles registration, login and bearer token resolution
type AuthService struct {
	userRepo identity.UserRepository
	signer   auth.TokenSigner
	hasher   auth.PasswordHasher
	config   AuthServiceConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	signer auth.TokenSigner,
	hasher auth.PasswordHasher,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if config.AccessTokenTTL <= 0 {
		config.AccessTokenTTL = DefaultAuthServiceConfig().AccessTokenTTL
	}
	return &AuthService{
		userRepo: userRepo,
		signer:   signer,
		hasher:   hasher,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a new active user. Username and email are jointly unique.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "register")
	defer span.End()

	if err := identity.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if taken {
		return nil, errAlreadyRegistered
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user, err := identity.NewUser(username, email, req.FullName, hash, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errAlreadyRegistered
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)
	return &RegisterResponse{Message: "User created successfully", UserID: user.ID}, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	login := strings.TrimSpace(req.Username)
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown user", zap.String("username", login))
			return nil, shared.ErrInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	// A wrong password always answers ErrInvalidCredentials, locked or not.
	// The lock only surfaces once the password has been verified.
	now := s.now()
	if !s.hasher.Check(user.HashedPassword, req.Password) {
		s.recordLoginFailure(ctx, user, now)
		return nil, shared.ErrInvalidCredentials
	}

	if err := user.CheckCanLogin(now); err != nil {
		s.logger.Warn("Login refused", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user.RecordLoginSuccess(now)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login, only log the error
		s.logger.Error("Failed to record login success", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &LoginResponse{TokenResponse: *token, User: toUserSummary(user)}, nil
}

func (s *AuthService) recordLoginFailure(ctx context.Context, user *identity.User, now time.Time) {
	if user.IsLocked(now) {
		s.logger.Warn("Invalid password for locked account", zap.Uint("user_id", user.ID))
		return
	}

	locked := user.RecordLoginFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record login failure", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if locked {
		s.logger.Warn("Account locked after too many failed attempts",
			zap.Uint("user_id", user.ID),
			zap.Int("max_attempts", s.config.MaxLoginAttempts),
		)
		return
	}
	s.logger.Warn("Invalid password attempt",
		zap.Uint("user_id", user.ID),
		zap.Int("failed_attempts", user.FailedLoginAttempts),
	)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(user *identity.User) UserResponse {
	return ToUserResponse(user)
}

// Refresh issues a new access token for an already authenticated user
func (s *AuthService) Refresh(ctx context.Context, user *identity.User) (*TokenResponse, error) {
	_, span := telemetry.StartServiceSpan(ctx, "auth", "refresh", "user_id", user.ID)
	defer span.End()

	token, err := s.issue(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return token, nil
}

// Authenticate resolves a bearer token to an active user. Token and account
// failures collapse to ErrUnauthorized; store failures are returned as is.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*identity.User, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		s.logger.Error("Failed to resolve token subject", zap.String("subject", claims.Subject), zap.Error(err))
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	if !user.IsActive {
		return nil, shared.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResponse, error) {
	token, _, err := s.signer.Issue(user.Username, user.Role.String(), s.config.AccessTokenTTL)
	if err != nil {
		return nil, shared.NewDomainErrorWithCause("INTERNAL_ERROR", "Failed to generate access token", err)
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(s.config.AccessTokenTTL / time.Second),
	}, nil
}
