package models

import "gorm.io/datatypes"

type SprintModel struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"size:100;not null"`
	MaxPoints     int            `gorm:"not null"`
	StartDate     datatypes.Date `gorm:"not null;index"`
	EndDate       datatypes.Date `gorm:"not null;index"`
	ClosedAt      *int64         `gorm:"index"`
	ClosureReport datatypes.JSON
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64 `gorm:"autoUpdateTime:false;not null"`
}

func (SprintModel) TableName() string {
	return "sprints"
}
