package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type ContactMessageRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (req *ContactMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Message, validation.Required),
	)
}

type ContactStatusRequest struct {
	Status string `json:"status"`
}

func (req *ContactStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			domain.ContactStatusNew,
			domain.ContactStatusRead,
			domain.ContactStatusReplied,
		)),
	)
}

type AccountRequestRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Reason   string `json:"reason"`
}

func (req *AccountRequestRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Reason, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.Password)
}

type SendMessageRequest struct {
	Receiver uint   `json:"receiver"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	ReplyTo  *uint  `json:"reply_to"`
}

func (req *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Receiver, validation.Required),
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Message, validation.Required),
	)
}
