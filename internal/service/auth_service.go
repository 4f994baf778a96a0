package service

import (
	"errors"

	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"github.com/pawprints/pawprints-backend/pkg/bcrypt"
	"github.com/pawprints/pawprints-backend/pkg/email"
	jwtPkg "github.com/pawprints/pawprints-backend/pkg/jwt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal(err)
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Best effort, never blocks registration.
	go s.emailService.SendWelcomeEmail(user.Email, user.FullName)

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
