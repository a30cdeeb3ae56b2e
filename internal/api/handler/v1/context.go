package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/api/middleware"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	TeamMembers(ctx context.Context) ([]domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SearchMembers(ctx context.Context, query string) ([]domain.User, error)
	UpdateNames(ctx context.Context, userID uint, firstName, lastName string) error
	UpdateProfile(ctx context.Context, userID uint, profile domain.Profile) (domain.Profile, error)
}

// MediaStore persists uploads and resolves them back to URLs.
type MediaStore interface {
	Save(kind string, header *multipart.FileHeader) (string, error)
	Remove(url string) error
}

// getUserFromContext loads the caller set by the JWT middleware. Profile
// preloading makes the role available to policy checks.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.CtxKeyUserID)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized("authentication required")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("user no longer exists")
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}

// callerID returns the authenticated user id, zero for anonymous
// requests behind OptionalJWT.
func callerID(ctx *gin.Context) uint {
	return ctx.GetUint(middleware.CtxKeyUserID)
}
