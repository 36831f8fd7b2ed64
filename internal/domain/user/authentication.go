package user

import (
	"fmt"
	"time"

	vo "github.com/XavierPelle/sprintly/internal/domain/user/valueobjects"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

func (u *User) SetPassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := biztime.NowUTC()
	u.passwordHash = hash
	u.lastPasswordChangeAt = &now
	u.updatedAt = now
	return nil
}

// VerifyPassword checks plainPassword against the stored hash and updates the
// failed-attempt counter under policy.
func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher, policy *SecurityPolicy) error {
	if policy == nil {
		policy = DefaultSecurityPolicy()
	}
	now := biztime.NowUTC()
	if u.IsLocked(now) {
		return ErrAccountLocked
	}
	if !u.HasPassword() {
		return ErrInvalidCredentials
	}

	if err := hasher.Verify(plainPassword, u.passwordHash); err != nil {
		u.recordFailedLogin(policy, now)
		return ErrInvalidCredentials
	}

	u.resetFailedLoginAttempts(now)
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (u *User) ChangePassword(current string, next *vo.Password, hasher PasswordHasher) error {
	if err := hasher.Verify(current, u.passwordHash); err != nil {
		return ErrInvalidCurrentPassword
	}
	if next == nil {
		return fmt.Errorf("password cannot be nil")
	}
	if next.String() == current {
		return ErrPasswordUnchanged
	}
	return u.SetPassword(next, hasher)
}

func (u *User) recordFailedLogin(policy *SecurityPolicy, now time.Time) {
	u.failedLoginAttempts++
	u.updatedAt = now
	if u.failedLoginAttempts >= policy.MaxLoginAttempts {
		lockedUntil := now.Add(policy.LockoutDuration())
		u.lockedUntil = &lockedUntil
	}
}

func (u *User) resetFailedLoginAttempts(now time.Time) {
	if u.failedLoginAttempts > 0 || u.lockedUntil != nil {
		u.failedLoginAttempts = 0
		u.lockedUntil = nil
		u.updatedAt = now
	}
}

func (u *User) IsLocked(now time.Time) bool {
	return u.lockedUntil != nil && now.Before(*u.lockedUntil)
}

func (u *User) HasPassword() bool {
	return u.passwordHash != ""
}

func (u *User) FailedLoginAttempts() int {
	return u.failedLoginAttempts
}
