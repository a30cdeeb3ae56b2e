package response

import "github.com/chahin-fh/laboissimlocal/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
