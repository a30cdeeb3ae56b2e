package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/request"
	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

var (
	errSelfBan       = errors.New("vous ne pouvez pas vous bannir vous-même")
	errSelfDelete    = errors.New("vous ne pouvez pas supprimer votre propre compte")
	errNotStaff      = errors.New("staff privileges required")
	errInvalidUserID = errors.New("invalid user ID")
)

type AdminService interface {
	UpdateUserRole(ctx context.Context, targetID uint, role string) (domain.User, error)
	BanUser(ctx context.Context, caller domain.User, targetID uint) (domain.User, error)
	UnbanUser(ctx context.Context, targetID uint) (domain.User, error)
	DeleteUser(ctx context.Context, caller domain.User, targetID uint) (domain.User, error)
}

type AdminHandler struct {
	svc  AdminService
	uSvc UserService
}

func NewAdminHandler(svc AdminService, uSvc UserService) *AdminHandler {
	return &AdminHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *AdminHandler) requireManager(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	if !service.Allowed(user, service.ResourceUserAccounts, service.ActionManage) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotStaff))
		return domain.User{}, false
	}

	return user, true
}

func parseUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidUserID))
		return 0, false
	}

	return uint(id), true
}

// HandleUpdateUserRole godoc
// @Summary      Set a user's role
// @Description  Updates the profile role and the staff flag in one transaction.
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Param        request  body      request.UpdateRoleRequest true "request body"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/update-user-role/{userID} [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleUpdateUserRole(ctx *gin.Context) {
	if _, ok := h.requireManager(ctx); !ok {
		return
	}

	targetID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateUserRole(ctx.Request.Context(), targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
		default:
			err = fmt.Errorf("v1.HandleUpdateUserRole -> h.svc.UpdateUserRole -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleBanUser godoc
// @Summary      Deactivate a user account
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ban-user/{userID} [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleBanUser(ctx *gin.Context) {
	caller, ok := h.requireManager(ctx)
	if !ok {
		return
	}

	targetID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	user, err := h.svc.BanUser(ctx.Request.Context(), caller, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfBan):
			response.RenderErr(ctx, response.ErrBadRequest(errSelfBan))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
		default:
			err = fmt.Errorf("v1.HandleBanUser -> h.svc.BanUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUnbanUser godoc
// @Summary      Reactivate a user account
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/unban-user/{userID} [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleUnbanUser(ctx *gin.Context) {
	if _, ok := h.requireManager(ctx); !ok {
		return
	}

	targetID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	user, err := h.svc.UnbanUser(ctx.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
			return
		}

		err = fmt.Errorf("v1.HandleUnbanUser -> h.svc.UnbanUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/delete-user/{userID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	caller, ok := h.requireManager(ctx)
	if !ok {
		return
	}

	targetID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteUser(ctx.Request.Context(), caller, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			response.RenderErr(ctx, response.ErrBadRequest(errSelfDelete))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("l'utilisateur %v a été supprimé", deleted.Username),
	})
}
