package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateSiteContentRequest struct {
	ContactAddress         string   `json:"contact_address"`
	ContactPhone           string   `json:"contact_phone"`
	ContactEmail           string   `json:"contact_email"`
	ContactHours           string   `json:"contact_hours"`
	FooterResearchDomains  []string `json:"footer_research_domains"`
	FooterTeamIntroduction string   `json:"footer_team_introduction"`
	FooterTeamName         string   `json:"footer_team_name"`
	FooterCopyright        string   `json:"footer_copyright"`
}

func (req *UpdateSiteContentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContactEmail, is.Email),
	)
}
