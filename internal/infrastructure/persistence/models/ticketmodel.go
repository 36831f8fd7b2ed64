package models

type TicketModel struct {
	ID               uint   `gorm:"primaryKey"`
	Key              string `gorm:"column:ticket_key;uniqueIndex;size:30;not null"`
	Title            string `gorm:"size:200;not null"`
	Description      string `gorm:"type:text;not null"`
	Status           string `gorm:"size:20;not null;index"`
	Priority         string `gorm:"size:20;not null;index"`
	Type             string `gorm:"column:ticket_type;size:20;not null;index"`
	DifficultyPoints int    `gorm:"not null;default:0"`
	IsBlocked        bool   `gorm:"not null;default:false;index"`
	BlockedReason    string `gorm:"size:500;not null;default:''"`
	BlockedAt        *int64
	Branch           string `gorm:"size:255;not null;default:''"`
	PullRequestLink  string `gorm:"size:500;not null;default:''"`
	TestLink         string `gorm:"size:500;not null;default:''"`
	CreatorID        uint   `gorm:"not null;index"`
	AssigneeID       *uint  `gorm:"index"`
	SprintID         *uint  `gorm:"index"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:false;not null;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketHistoryModel struct {
	ID              uint    `gorm:"primaryKey"`
	TicketID        uint    `gorm:"not null;index:idx_ticket_histories_ticket_completed,priority:1"`
	FromStatus      *string `gorm:"size:20"`
	ToStatus        string  `gorm:"size:20;not null"`
	ChangedBy       *uint
	StartedAt       *int64
	CompletedAt     int64 `gorm:"not null;index:idx_ticket_histories_ticket_completed,priority:2"`
	DurationSeconds *int64
}

func (TicketHistoryModel) TableName() string {
	return "ticket_histories"
}

type TagModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	Content   string `gorm:"size:50;not null"`
	Color     string `gorm:"size:7;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (TagModel) TableName() string {
	return "ticket_tags"
}

type CommentModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:false;not null"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}
