package service

import (
	"errors"

	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(err)
	}

	user.FullName = req.FullName
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// UpdateRole changes a user's role. Admin only; admins cannot demote
// themselves, which keeps at least one admin around.
func (s *UserService) UpdateRole(actor models.Actor, userID uint, role models.Role) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can change roles")
	}
	if !role.IsValid() {
		return nil, apperr.Validation("Unknown role")
	}
	if actor.ID == userID {
		return nil, apperr.Validation("Admins cannot change their own role")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return nil, apperr.Internal(err)
	}
	user.Role = role
	return user, nil
}
