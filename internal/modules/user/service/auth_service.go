package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/user/dto"
	"anoa.com/tccscheduler/internal/modules/user/repository"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type authService struct {
	repo     repository.UserRepository
	users    UserService
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, users UserService, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

// Register creates a self-service account. The role is always student;
// advisor and secretariat accounts are provisioned by the secretariat.
func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	user, err := s.users.Create(ctx, dto.CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     entity.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
