package services

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
)

// UserReaderSvc defines read operations on the user directory mirror
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations on the user directory mirror
type UserWriterSvc interface {
	// SyncUser upserts the directory entry pushed by the authentication service.
	SyncUser(ctx context.Context, userID string, req dto.SyncUserRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
