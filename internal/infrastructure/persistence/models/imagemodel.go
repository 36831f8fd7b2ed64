package models

type ImageModel struct {
	ID           uint   `gorm:"primaryKey"`
	URL          string `gorm:"size:500;not null"`
	Filename     string `gorm:"size:255;not null"`
	OriginalName string `gorm:"size:255;not null;default:''"`
	MimeType     string `gorm:"size:100;not null;default:''"`
	Size         int64  `gorm:"not null;default:0"`
	DisplayOrder int    `gorm:"not null;default:0"`
	Type         string `gorm:"column:image_type;size:30;not null"`
	UserID       *uint  `gorm:"index"`
	TicketID     *uint  `gorm:"index"`
	TestID       *uint  `gorm:"index"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (ImageModel) TableName() string {
	return "images"
}
