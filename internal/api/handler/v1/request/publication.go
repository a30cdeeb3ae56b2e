package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreatePublicationRequest struct {
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	Keywords        []string `json:"keywords"`
	TaggedMembers   []uint   `json:"tagged_members"`
	TaggedExternals []uint   `json:"tagged_externals"`
	AttachedFiles   []uint   `json:"attached_files"`
}

func (req *CreatePublicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Abstract, validation.Required),
	)
}

type UpdatePublicationRequest struct {
	CreatePublicationRequest
}

type CreateExternalRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (req *CreateExternalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type RenameFileRequest struct {
	Name string `json:"name"`
}

func (req *RenameFileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
	)
}
