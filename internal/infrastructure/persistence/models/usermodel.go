package models

// UserModel represents the database persistence model for users
type UserModel struct {
	ID                   uint   `gorm:"primaryKey"`
	Email                string `gorm:"uniqueIndex;not null;size:255"`
	FirstName            string `gorm:"not null;size:100"`
	LastName             string `gorm:"not null;size:100"`
	PasswordHash         string `gorm:"not null;size:255"`
	LastPasswordChangeAt *int64
	FailedLoginAttempts  int `gorm:"not null;default:0"`
	LockedUntil          *int64
	CreatedAt            int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt            int64 `gorm:"autoUpdateTime:false;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
