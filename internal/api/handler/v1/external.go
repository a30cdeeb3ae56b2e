package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/request"
	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

var errInvalidExternalID = errors.New("invalid external member ID")

type ExternalService interface {
	ListExternals(ctx context.Context) ([]domain.External, error)
	GetExternal(ctx context.Context, id uint) (domain.External, error)
	CreateExternal(ctx context.Context, external domain.External) (domain.External, bool, error)
	UpdateExternal(ctx context.Context, external domain.External) (domain.External, error)
	DeleteExternal(ctx context.Context, id uint) error
}

type ExternalHandler struct {
	svc   ExternalService
	uSvc  UserService
	media MediaStore
}

func NewExternalHandler(svc ExternalService, uSvc UserService, media MediaStore) *ExternalHandler {
	return &ExternalHandler{
		svc:   svc,
		uSvc:  uSvc,
		media: media,
	}
}

// HandleListExternals godoc
// @Summary      List external members
// @Tags         externals
// @Produce      json
// @Success      200  {array}   domain.External
// @Failure      500  {object}  response.Err
// @Router       /external-members [get]
func (h *ExternalHandler) HandleListExternals(ctx *gin.Context) {
	externals, err := h.svc.ListExternals(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListExternals -> h.svc.ListExternals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, externals)
}

// HandleGetExternal godoc
// @Summary      Get an external member by ID
// @Tags         externals
// @Produce      json
// @Param        externalID   path      int  true  "external member ID"
// @Success      200  {object}  domain.External
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /external-members/{externalID} [get]
func (h *ExternalHandler) HandleGetExternal(ctx *gin.Context) {
	externalID, ok := parseExternalID(ctx)
	if !ok {
		return
	}

	external, err := h.svc.GetExternal(ctx.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, service.ErrExternalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("external member", "ID", externalID))
			return
		}

		err = fmt.Errorf("v1.HandleGetExternal -> h.svc.GetExternal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, external)
}

// HandleCreateExternal godoc
// @Summary      Create an external member (upsert by email)
// @Description  Posting an existing email updates the record and answers 200 instead of 201.
// @Tags         externals
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  domain.External
// @Success      201  {object}  domain.External
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /external-members [post]
// @Security     BearerAuth
func (h *ExternalHandler) HandleCreateExternal(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	external, ok := h.bindExternal(ctx)
	if !ok {
		return
	}

	saved, created, err := h.svc.CreateExternal(ctx.Request.Context(), external)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateExternal -> h.svc.CreateExternal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	ctx.JSON(status, saved)
}

// HandleUpdateExternal godoc
// @Summary      Update an external member
// @Tags         externals
// @Accept       multipart/form-data
// @Produce      json
// @Param        externalID   path      int  true  "external member ID"
// @Success      200  {object}  domain.External
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /external-members/{externalID} [put]
// @Security     BearerAuth
func (h *ExternalHandler) HandleUpdateExternal(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	externalID, ok := parseExternalID(ctx)
	if !ok {
		return
	}

	external, ok := h.bindExternal(ctx)
	if !ok {
		return
	}
	external.ID = externalID

	updated, err := h.svc.UpdateExternal(ctx.Request.Context(), external)
	if err != nil {
		if errors.Is(err, service.ErrExternalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("external member", "ID", externalID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateExternal -> h.svc.UpdateExternal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteExternal godoc
// @Summary      Delete an external member
// @Tags         externals
// @Produce      json
// @Param        externalID   path      int  true  "external member ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /external-members/{externalID} [delete]
// @Security     BearerAuth
func (h *ExternalHandler) HandleDeleteExternal(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	externalID, ok := parseExternalID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteExternal(ctx.Request.Context(), externalID); err != nil {
		if errors.Is(err, service.ErrExternalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("external member", "ID", externalID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteExternal -> h.svc.DeleteExternal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// bindExternal accepts JSON or multipart form. Multipart carries the
// optional cv and profile_pic uploads.
func (h *ExternalHandler) bindExternal(ctx *gin.Context) (domain.External, bool) {
	var req request.CreateExternalRequest

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		req.Name = ctx.PostForm("name")
		req.Email = ctx.PostForm("email")
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.External{}, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.External{}, false
	}

	external := domain.External{
		Name:  req.Name,
		Email: req.Email,
	}

	if header, err := ctx.FormFile("cv"); err == nil {
		url, err := h.media.Save("external_cvs", header)
		if err != nil {
			err = fmt.Errorf("v1.bindExternal -> h.media.Save -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return domain.External{}, false
		}
		external.CV = url
	}

	if header, err := ctx.FormFile("profile_pic"); err == nil {
		url, err := h.media.Save("external_pics", header)
		if err != nil {
			err = fmt.Errorf("v1.bindExternal -> h.media.Save -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return domain.External{}, false
		}
		external.ProfilePic = url
	}

	return external, true
}

func parseExternalID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("externalID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidExternalID))
		return 0, false
	}

	return uint(id), true
}
