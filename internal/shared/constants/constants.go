package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 1000

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Tag limits
	MaxTagsPerTicket = 10
	MaxTagLength     = 50

	// Dashboard list sizes
	StaleTicketLimit      = 10
	MostActiveUsersLimit  = 10
	UpcomingSprintsLimit  = 5
	RecentlyClosedLimit   = 5
	TrendWeeks            = 12
	SprintTrendTolerance  = 10.0
	OnTrackRatio          = 0.9
	MaxKeyGenerateRetries = 5
)
