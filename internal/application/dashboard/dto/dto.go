// Package dto holds the response shapes of the personal and project
// dashboards.
package dto

import (
	"time"

	userdto "github.com/XavierPelle/sprintly/internal/application/user/dto"
)

// MemberDTO identifies a user inside a dashboard row.
type MemberDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PersonalDashboardDTO struct {
	User                  *userdto.UserSummaryDTO  `json:"user"`
	GeneratedAt           time.Time                `json:"generatedAt"`
	ProductionDeployments ProductionDeploymentsDTO `json:"productionDeployments"`
	TeamActivity          TeamActivityDTO          `json:"teamActivity"`
	PendingTests          PendingTestsDTO          `json:"pendingTests"`
	MyActiveTickets       MyActiveTicketsDTO       `json:"myActiveTickets"`
	MyFailedTests         MyFailedTestsDTO         `json:"myFailedTests"`
	MyUrgentTickets       MyUrgentTicketsDTO       `json:"myUrgentTickets"`
	TeamAlerts            TeamAlertsDTO            `json:"teamAlerts"`
	CurrentSprintSummary  CurrentSprintSummaryDTO  `json:"currentSprintSummary"`
}

type ProductionDeploymentsDTO struct {
	Yesterday []DeploymentDTO `json:"yesterday"`
	Count     int             `json:"count"`
}

type DeploymentDTO struct {
	TicketID        uint       `json:"ticketId"`
	TicketKey       string     `json:"ticketKey"`
	Title           string     `json:"title"`
	DeployedBy      *MemberDTO `json:"deployedBy"`
	DeployedAt      time.Time  `json:"deployedAt"`
	DeployedAgo     string     `json:"deployedAgo"`
	Branch          string     `json:"branch"`
	PullRequestLink *string    `json:"pullRequestLink"`
	Priority        string     `json:"priority"`
}

type TeamActivityDTO struct {
	Members            []TeamMemberDTO `json:"members"`
	TotalActiveTickets int             `json:"totalActiveTickets"`
}

type TeamMemberDTO struct {
	UserID         uint            `json:"userId"`
	UserName       string          `json:"userName"`
	CurrentTickets []ActiveWorkDTO `json:"currentTickets"`
	TicketCount    int             `json:"ticketCount"`
}

type ActiveWorkDTO struct {
	TicketID            uint   `json:"ticketId"`
	TicketKey           string `json:"ticketKey"`
	Title               string `json:"title"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
	DaysSinceLastUpdate int    `json:"daysSinceLastUpdate"`
	UpdatedAgo          string `json:"updatedAgo"`
}

type PendingTestsDTO struct {
	Tests []PendingTestDTO `json:"tests"`
	Count int              `json:"count"`
}

type PendingTestDTO struct {
	TestID      uint      `json:"testId"`
	TicketID    uint      `json:"ticketId"`
	TicketKey   string    `json:"ticketKey"`
	TicketTitle string    `json:"ticketTitle"`
	Description string    `json:"description"`
	CreatedBy   MemberDTO `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Priority    string    `json:"priority"`
	HasImages   bool      `json:"hasImages"`
}

type MyActiveTicketsDTO struct {
	Tickets     []MyTicketDTO  `json:"tickets"`
	ByStatus    map[string]int `json:"byStatus"`
	TotalPoints int            `json:"totalPoints"`
}

type MyTicketDTO struct {
	TicketID            uint    `json:"ticketId"`
	TicketKey           string  `json:"ticketKey"`
	Title               string  `json:"title"`
	Status              string  `json:"status"`
	Priority            string  `json:"priority"`
	DifficultyPoints    int     `json:"difficultyPoints"`
	IsBlocked           bool    `json:"isBlocked"`
	BlockedReason       *string `json:"blockedReason"`
	DaysSinceLastUpdate int     `json:"daysSinceLastUpdate"`
	UpdatedAgo          string  `json:"updatedAgo"`
	HasTests            bool    `json:"hasTests"`
	TestCount           int     `json:"testCount"`
	Branch              *string `json:"branch"`
}

type MyFailedTestsDTO struct {
	Tickets          []FailedTicketDTO `json:"tickets"`
	TotalFailedTests int               `json:"totalFailedTests"`
}

type FailedTicketDTO struct {
	TicketID        uint            `json:"ticketId"`
	TicketKey       string          `json:"ticketKey"`
	Title           string          `json:"title"`
	Status          string          `json:"status"`
	FailedTests     []FailedTestDTO `json:"failedTests"`
	FailedTestCount int             `json:"failedTestCount"`
}

type FailedTestDTO struct {
	TestID      uint      `json:"testId"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MyUrgentTicketsDTO struct {
	Critical    []UrgentTicketDTO `json:"critical"`
	High        []UrgentTicketDTO `json:"high"`
	TotalUrgent int               `json:"totalUrgent"`
}

type UrgentTicketDTO struct {
	TicketID         uint   `json:"ticketId"`
	TicketKey        string `json:"ticketKey"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	DaysSinceCreated int    `json:"daysSinceCreated"`
	IsBlocked        bool   `json:"isBlocked"`
}

type TeamAlertsDTO struct {
	BlockedTickets []BlockedTicketDTO `json:"blockedTickets"`
	StaleTickets   []StaleTicketDTO   `json:"staleTickets"`
}

type BlockedTicketDTO struct {
	TicketID         uint      `json:"ticketId"`
	TicketKey        string    `json:"ticketKey"`
	Title            string    `json:"title"`
	Assignee         MemberDTO `json:"assignee"`
	BlockedReason    string    `json:"blockedReason"`
	Priority         string    `json:"priority"`
	DaysSinceBlocked int       `json:"daysSinceBlocked"`
}

type StaleTicketDTO struct {
	TicketID            uint       `json:"ticketId"`
	TicketKey           string     `json:"ticketKey"`
	Title               string     `json:"title"`
	Assignee            *MemberDTO `json:"assignee"`
	Status              string     `json:"status"`
	DaysSinceLastUpdate int        `json:"daysSinceLastUpdate"`
	UpdatedAgo          string     `json:"updatedAgo"`
}

// CurrentSprintSummaryDTO has nil sprint fields when no sprint is running.
type CurrentSprintSummaryDTO struct {
	SprintID             *uint   `json:"sprintId"`
	SprintName           *string `json:"sprintName"`
	DaysRemaining        *int    `json:"daysRemaining"`
	CompletionPercentage int     `json:"completionPercentage"`
	Velocity             float64 `json:"velocity"`
	BurndownTrend        *string `json:"burndownTrend"`
}

type ProjectDashboardDTO struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Overview    OverviewDTO       `json:"overview"`
	Tickets     TicketStatsDTO    `json:"tickets"`
	Sprints     SprintOverviewDTO `json:"sprints"`
	Team        TeamStatsDTO      `json:"team"`
	Quality     QualityDTO        `json:"quality"`
	Trends      *TrendsDTO        `json:"trends,omitempty"`
}

type OverviewDTO struct {
	TotalTickets     int `json:"totalTickets"`
	TotalUsers       int `json:"totalUsers"`
	TotalSprints     int `json:"totalSprints"`
	ActiveSprints    int `json:"activeSprints"`
	CompletedSprints int `json:"completedSprints"`
}

type TicketStatsDTO struct {
	ByStatus               map[string]int `json:"byStatus"`
	ByType                 map[string]int `json:"byType"`
	ByPriority             map[string]int `json:"byPriority"`
	TotalPoints            int            `json:"totalPoints"`
	CompletedPoints        int            `json:"completedPoints"`
	AveragePointsPerTicket float64        `json:"averagePointsPerTicket"`
	UnassignedCount        int            `json:"unassignedCount"`
	WithoutSprintCount     int            `json:"withoutSprintCount"`
	BlockedCount           int            `json:"blockedCount"`
}

type SprintOverviewDTO struct {
	Active            []ActiveSprintDTO    `json:"active"`
	Upcoming          []UpcomingSprintDTO  `json:"upcoming"`
	RecentlyCompleted []CompletedSprintDTO `json:"recentlyCompleted"`
}

type ActiveSprintDTO struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	TotalPoints        int    `json:"totalPoints"`
	CompletedPoints    int    `json:"completedPoints"`
	ProgressPercentage int    `json:"progressPercentage"`
	TicketsCount       int    `json:"ticketsCount"`
	DaysRemaining      int    `json:"daysRemaining"`
}

type UpcomingSprintDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TicketsCount int    `json:"ticketsCount"`
	TotalPoints  int    `json:"totalPoints"`
}

type CompletedSprintDTO struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	EndDate        string  `json:"endDate"`
	CompletionRate int     `json:"completionRate"`
	Velocity       float64 `json:"velocity"`
}

type TeamStatsDTO struct {
	MostActiveUsers      []ActiveUserDTO `json:"mostActiveUsers"`
	WorkloadDistribution []WorkloadDTO   `json:"workloadDistribution"`
}

type ActiveUserDTO struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	AssignedTickets  int    `json:"assignedTickets"`
	CompletedTickets int    `json:"completedTickets"`
	CommentsCount    int    `json:"commentsCount"`
	TestsCount       int    `json:"testsCount"`
	Score            int    `json:"score"`
}

type WorkloadDTO struct {
	UserID             uint   `json:"userId"`
	UserName           string `json:"userName"`
	AssignedPoints     int    `json:"assignedPoints"`
	CompletedPoints    int    `json:"completedPoints"`
	WorkloadPercentage int    `json:"workloadPercentage"`
}

type QualityDTO struct {
	TotalTests               int     `json:"totalTests"`
	ValidatedTests           int     `json:"validatedTests"`
	ValidationRate           int     `json:"validationRate"`
	TotalComments            int     `json:"totalComments"`
	AverageCommentsPerTicket float64 `json:"averageCommentsPerTicket"`
	TicketsWithTests         int     `json:"ticketsWithTests"`
	TestCoverage             int     `json:"testCoverage"`
}

type TrendsDTO struct {
	VelocityByWeek       []WeekVelocityDTO `json:"velocityByWeek"`
	TicketCreationByWeek []WeekCreationDTO `json:"ticketCreationByWeek"`
}

type WeekVelocityDTO struct {
	Week             string `json:"week"`
	WeekStart        string `json:"weekStart"`
	PointsCompleted  int    `json:"pointsCompleted"`
	TicketsCompleted int    `json:"ticketsCompleted"`
}

type WeekCreationDTO struct {
	Week           string `json:"week"`
	WeekStart      string `json:"weekStart"`
	TicketsCreated int    `json:"ticketsCreated"`
}
