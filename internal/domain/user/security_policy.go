package user

import "time"

// SecurityPolicy controls account lockout after repeated login failures.
type SecurityPolicy struct {
	MaxLoginAttempts       int
	LockoutDurationMinutes int
}

func DefaultSecurityPolicy() *SecurityPolicy {
	return &SecurityPolicy{
		MaxLoginAttempts:       5,
		LockoutDurationMinutes: 15,
	}
}

func (p *SecurityPolicy) LockoutDuration() time.Duration {
	return time.Duration(p.LockoutDurationMinutes) * time.Minute
}
