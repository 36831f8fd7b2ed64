package user

import (
	"fmt"
	"time"

	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

// User is a team member who creates, works on and tests tickets.
type User struct {
	id                   uint
	email                *vo.Email
	name                 *vo.Name
	passwordHash         string
	lastPasswordChangeAt *time.Time
	failedLoginAttempts  int
	lockedUntil          *time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

// NewUser creates a user without a password; call SetPassword before saving.
func NewUser(email *vo.Email, name *vo.Name) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}

	now := biztime.NowUTC()
	return &User{
		email:     email,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// AuthData is the credential state persisted next to the profile.
type AuthData struct {
	PasswordHash         string
	LastPasswordChangeAt *time.Time
	FailedLoginAttempts  int
	LockedUntil          *time.Time
}

func ReconstructUser(id uint, email *vo.Email, name *vo.Name, auth AuthData, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}

	return &User{
		id:                   id,
		email:                email,
		name:                 name,
		passwordHash:         auth.PasswordHash,
		lastPasswordChangeAt: auth.LastPasswordChangeAt,
		failedLoginAttempts:  auth.FailedLoginAttempts,
		lockedUntil:          auth.LockedUntil,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Email() *vo.Email     { return u.email }
func (u *User) Name() *vo.Name       { return u.name }
func (u *User) FullName() string     { return u.name.Full() }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) AuthData() AuthData {
	return AuthData{
		PasswordHash:         u.passwordHash,
		LastPasswordChangeAt: u.lastPasswordChangeAt,
		FailedLoginAttempts:  u.failedLoginAttempts,
		LockedUntil:          u.lockedUntil,
	}
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) UpdateName(name *vo.Name) error {
	if name == nil {
		return fmt.Errorf("name cannot be nil")
	}
	if u.name.Equals(name) {
		return nil
	}
	u.name = name
	u.updatedAt = biztime.NowUTC()
	return nil
}
