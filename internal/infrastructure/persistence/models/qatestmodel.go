package models

type QATestModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`
	IsValidated bool   `gorm:"not null;default:false;index"`
	ValidatedBy *uint
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:false;not null"`
}

func (QATestModel) TableName() string {
	return "qa_tests"
}
