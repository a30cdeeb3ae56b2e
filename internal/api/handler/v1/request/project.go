package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type CreateProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (req *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Status, validation.In(
			domain.ProjectStatusPlanning,
			domain.ProjectStatusActive,
			domain.ProjectStatusOnHold,
			domain.ProjectStatusCompleted,
			domain.ProjectStatusCancelled,
		)),
		validation.Field(&req.Priority, validation.In(
			domain.ProjectPriorityLow,
			domain.ProjectPriorityMedium,
			domain.ProjectPriorityHigh,
			domain.ProjectPriorityUrgent,
		)),
	)
}

type UpdateProjectRequest struct {
	CreateProjectRequest
}

type TeamMemberRequest struct {
	UserID uint `json:"user_id"`
}

func (req *TeamMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
	)
}
