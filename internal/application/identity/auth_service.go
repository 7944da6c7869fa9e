package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/balmstore/backend/internal/domain/identity"
	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/balmstore/backend/internal/infrastructure/auth"
)

// GoogleProfile is the identity returned by the OAuth provider
type GoogleProfile struct {
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleProvider exchanges an authorization code for a verified profile.
// Implemented by the oauth infrastructure; nil disables Google login.
type GoogleProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}

// AuthService handles registration, login and federated login
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	google     GoogleProvider
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. google may be nil.
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	google GoogleProvider,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		google:     google,
		logger:     logger,
	}
}

// Register creates an account and returns a session for it
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := identity.NewUser(req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", user.Email))
	return s.issueSession(user)
}

// Login verifies credentials and returns a session
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		// the login still succeeded
		s.logger.Error("failed to record login time", zap.Error(err))
	}

	return s.issueSession(user)
}

// GetCurrentUser returns the account behind a session
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// GoogleAuthURL returns the consent URL for Google login
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", shared.NewDomainError("NOT_CONFIGURED", "Google login is not configured")
	}
	return s.google.AuthURL(state), nil
}

// LoginWithGoogle exchanges an authorization code, then finds or creates the
// matching account. The exchange happens entirely before any store state is
// touched.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*AuthResponse, error) {
	if s.google == nil {
		return nil, shared.NewDomainError("NOT_CONFIGURED", "Google login is not configured")
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("google code exchange failed", zap.Error(err))
		return nil, shared.NewDomainError("OAUTH_FAILED", "Google sign-in could not be completed")
	}
	if !profile.EmailVerified {
		return nil, shared.NewDomainError("OAUTH_FAILED", "Google account email is not verified")
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		user.RefreshProfile(profile.Name, profile.Picture)
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewOAuthUser(profile.Email, profile.Name, profile.Picture)
		if err != nil {
			return nil, err
		}
		s.logger.Info("user created via google", zap.String("email", profile.Email))
	default:
		return nil, err
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(auth.TokenInput{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtService.GetAccessTokenExpiration().Seconds()),
		User:        ToUserResponse(user),
	}, nil
}
