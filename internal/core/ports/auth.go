package ports

import (
	"context"

	"github.com/jake-esse/ai-broker/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AuthService registers users and issues JWTs.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role, brokerID string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
