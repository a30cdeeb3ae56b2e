package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Institution string `json:"institution"`
	Website     string `json:"website"`
	LinkedIn    string `json:"linkedin"`
	Twitter     string `json:"twitter"`
	GitHub      string `json:"github"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Bio, validation.Length(0, 2000)),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.LinkedIn, is.URL),
		validation.Field(&req.Twitter, is.URL),
		validation.Field(&req.GitHub, is.URL),
	)
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (req *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required,
			validation.In(domain.RoleMember, domain.RoleAdmin, domain.RoleChefDEquipe)),
	)
}
