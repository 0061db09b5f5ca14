package auth

import (
	"context"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
	pkgauth "github.com/resumehub/notify-api/pkg/auth"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/security"
)

// LoginResult carries the issued token and the authenticated profile
type LoginResult struct {
	Token string         `json:"token"`
	User  *model.Profile `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error)
	ValidateToken(tokenString string) (*pkgauth.Claims, error)
}

type service struct {
	profiles  repository.ProfileRepository
	passwords security.PasswordVerifier
	jwt       *pkgauth.JWTManager
}

func NewService(profiles repository.ProfileRepository, passwords security.PasswordVerifier, jwt *pkgauth.JWTManager) Service {
	return &service{profiles: profiles, passwords: passwords, jwt: jwt}
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	profile, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		// An unknown email reads the same as a wrong password
		return nil, apperrors.Unauthenticated(err)
	}

	if err := s.passwords.Compare(profile.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthenticated(err)
	}

	token, err := s.jwt.Generate(profile.ID, profile.EmailOrEmpty(), profile.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &LoginResult{Token: token, User: profile}, nil
}

func (s *service) ValidateToken(tokenString string) (*pkgauth.Claims, error) {
	return s.jwt.Validate(tokenString)
}
