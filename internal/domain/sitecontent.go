package domain

// SiteContent is a singleton (id=1), created on first access.
type SiteContent struct {
	ID                     uint     `json:"id"`
	ContactAddress         string   `json:"contact_address"`
	ContactPhone           string   `json:"contact_phone"`
	ContactEmail           string   `json:"contact_email"`
	ContactHours           string   `json:"contact_hours"`
	FooterResearchDomains  []string `json:"footer_research_domains"`
	FooterTeamIntroduction string   `json:"footer_team_introduction"`
	FooterTeamName         string   `json:"footer_team_name"`
	FooterCopyright        string   `json:"footer_copyright"`
}
