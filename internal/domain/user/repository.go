package user

import "context"

// Repository defines the interface for user data operations. Lookups of a
// missing user return (nil, nil).
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListAll returns every user, ordered by ID.
	ListAll(ctx context.Context) ([]*User, error)
}
