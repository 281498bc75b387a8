package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"consigne/internal/auth"
	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

// AuthService handles signup, credential validation and token lifecycle.
type AuthService interface {
	Signup(ctx context.Context, in CreateUserInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Confirm(ctx context.Context, token string) (*model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo    repository.UserRepository
	userService UserService
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	mailer      Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	userService UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer Mailer,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		userService: userService,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		mailer:      mailer,
	}
}

// Signup registers a PENDING account and mails the confirmation link.
func (s *authService) Signup(ctx context.Context, in CreateUserInput) (*model.User, error) {
	user, err := s.userService.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateConfirmToken(user.ID, user.Email)
	if err != nil {
		// The account exists; the user can request a new mail later.
		log.Printf("generate confirm token for %s: %v", user.Email, err)
		return user, nil
	}
	if err := s.mailer.SendConfirmation(user, token); err != nil {
		log.Printf("send confirmation to %s: %v", user.Email, err)
	}
	return user, nil
}

// Login validates credentials, then applies the activation gate, then issues
// tokens. Unknown email and wrong password both come back as
// ErrInvalidCredentials so the response does not leak which half failed; the
// two cases are only told apart in the log.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		log.Printf("login rejected: unknown email %q", email)
		return "", "", nil, errors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		log.Printf("login rejected: bad password for %q", email)
		return "", "", nil, errors.ErrInvalidCredentials
	}

	// Credentials are correct; the account still has to be confirmed.
	if user.Status == model.StatusPending {
		return "", "", nil, errors.ErrAccountNotConfirmed
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID.String(), user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Confirm flips a PENDING account to ACTIVE from the mailed token. Confirming
// an already-ACTIVE account is a no-op.
func (s *authService) Confirm(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil || claims.Purpose != auth.PurposeConfirm {
		return nil, errors.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if user.Status == model.StatusActive {
		return user, nil
	}
	user.Status = model.StatusActive
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", errors.ErrInvalidRefreshToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(id, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
