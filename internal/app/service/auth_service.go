package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blog_nest/internal/common"
	"blog_nest/internal/common/security"
	"blog_nest/internal/domain/model"
	"blog_nest/internal/domain/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *security.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type SignUpRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// SignUp validates the whole payload, aggregating every field failure, and
// creates the credential record. New users always get {User} and active=true.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	verrs, err := s.validateSignUp(ctx, req)
	if err != nil {
		return "", err
	}
	if len(verrs) > 0 {
		return "", verrs
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		Roles:          []string{model.RoleUser},
		Active:         true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The pre-check and the insert are not atomic; a store-level conflict
		// surfaces as the same validation shape the pre-check would produce.
		switch {
		case errors.Is(err, common.ErrDuplicateUsername):
			return "", common.ValidationErrors{{Field: "username", Message: msgUsernameTaken}}
		case errors.Is(err, common.ErrDuplicateEmail):
			return "", common.ValidationErrors{{Field: "email", Message: msgEmailTaken}}
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return user.Username, nil
}

// Login gates in order: fields present, identity known, account active,
// password correct. Every failed gate after the first answers with the same
// generic Unauthorized so usernames cannot be enumerated here.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (accessToken, refreshToken string, err error) {
	if req.Username == "" || req.Password == "" {
		return "", "", common.BadRequest("All fields are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", common.ErrUnauthorized
		}
		return "", "", fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return "", "", common.ErrUnauthorized
	}

	match, err := security.CheckPassword(req.Password, user.HashedPassword)
	if err != nil {
		return "", "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return "", "", common.ErrUnauthorized
	}

	accessToken, err = s.tokens.IssueAccessToken(user.Username, user.Roles)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err = s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Refresh verifies the refresh token and mints a new access token from the
// current credential record. Roles are always re-read from the store; the
// refresh token's claims are never trusted for authorization.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	username, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", common.ErrForbidden
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Username, user.Roles)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}
