package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
)

// userService maintains the local mirror of the user directory.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) SyncUser(ctx context.Context, userID string, req dto.SyncUserRequest) (*domain.User, error) {
	saved, err := s.userRepo.SaveUser(ctx, req.ToDomainUser(userID))
	if err != nil {
		s.LogError(ctx, err, "Failed to sync user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to sync user in service: %w", err)
	}
	s.LogInfo(ctx, "User synced", slog.String("user_id", userID), slog.String("role", string(saved.Role)))
	return saved, nil
}
