package domain

import "time"

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

const (
	ProjectPriorityLow    = "low"
	ProjectPriorityMedium = "medium"
	ProjectPriorityHigh   = "high"
	ProjectPriorityUrgent = "urgent"
)

type Project struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	CreatedBy   uint              `json:"created_by"`
	Creator     User              `json:"-"`
	TeamMembers []User            `json:"-"`
	Documents   []ProjectDocument `json:"documents"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// HasAccess reports whether userID is the creator or a team member.
func (p Project) HasAccess(userID uint) bool {
	if p.CreatedBy == userID {
		return true
	}

	for _, m := range p.TeamMembers {
		if m.ID == userID {
			return true
		}
	}

	return false
}

type ProjectDocument struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project"`
	Name       string    `json:"name"`
	File       string    `json:"file"`
	UploadedBy uint      `json:"uploaded_by"`
	Uploader   User      `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
	FileType   string    `json:"file_type"`
	Size       int64     `json:"size"`
}
