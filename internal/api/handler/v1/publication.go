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
	errNotPublicationOwner  = errors.New("seul l'auteur peut supprimer cette publication")
	errInvalidPublicationID = errors.New("invalid publication ID")
)

type PublicationService interface {
	ListPublications(ctx context.Context) ([]domain.Publication, error)
	GetPublication(ctx context.Context, id uint) (domain.Publication, error)
	CreatePublication(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error)
	UpdatePublication(ctx context.Context, pub domain.Publication, memberIDs, externalIDs, fileIDs []uint) (domain.Publication, error)
	DeletePublication(ctx context.Context, callerID, id uint) error
	SearchMembers(ctx context.Context, query string) ([]domain.User, error)
	SearchExternals(ctx context.Context, query string) ([]domain.External, error)
}

type PublicationHandler struct {
	svc  PublicationService
	uSvc UserService
}

func NewPublicationHandler(svc PublicationService, uSvc UserService) *PublicationHandler {
	return &PublicationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListPublications godoc
// @Summary      List publications
// @Tags         publications
// @Produce      json
// @Success      200  {array}   response.PublicationResponse
// @Failure      500  {object}  response.Err
// @Router       /publications [get]
func (h *PublicationHandler) HandleListPublications(ctx *gin.Context) {
	pubs, err := h.svc.ListPublications(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPublications -> h.svc.ListPublications -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPublicationsResponse(pubs))
}

// HandleGetPublication godoc
// @Summary      Get a publication by ID
// @Tags         publications
// @Produce      json
// @Param        publicationID   path      int  true  "publication ID"
// @Success      200  {object}  response.PublicationResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{publicationID} [get]
func (h *PublicationHandler) HandleGetPublication(ctx *gin.Context) {
	publicationID, ok := parsePublicationID(ctx)
	if !ok {
		return
	}

	pub, err := h.svc.GetPublication(ctx.Request.Context(), publicationID)
	if err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("publication", "ID", publicationID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPublication -> h.svc.GetPublication -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPublicationResponse(pub))
}

// HandleCreatePublication godoc
// @Summary      Create a publication
// @Tags         publications
// @Produce      json
// @Param        request  body      request.CreatePublicationRequest true "request body"
// @Success      201  {object}  response.PublicationResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications [post]
// @Security     BearerAuth
func (h *PublicationHandler) HandleCreatePublication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pub, err := h.svc.CreatePublication(ctx.Request.Context(), domain.Publication{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		PostedBy: user.ID,
	}, req.TaggedMembers, req.TaggedExternals, req.AttachedFiles)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreatePublication -> h.svc.CreatePublication -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewPublicationResponse(pub))
}

// HandleUpdatePublication godoc
// @Summary      Update a publication
// @Description  Tag lists are replaced as sets, not merged.
// @Tags         publications
// @Produce      json
// @Param        publicationID   path      int  true  "publication ID"
// @Param        request  body      request.UpdatePublicationRequest true "request body"
// @Success      200  {object}  response.PublicationResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{publicationID} [put]
// @Security     BearerAuth
func (h *PublicationHandler) HandleUpdatePublication(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	publicationID, ok := parsePublicationID(ctx)
	if !ok {
		return
	}

	var req request.UpdatePublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pub, err := h.svc.UpdatePublication(ctx.Request.Context(), domain.Publication{
		ID:       publicationID,
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
	}, req.TaggedMembers, req.TaggedExternals, req.AttachedFiles)
	if err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("publication", "ID", publicationID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePublication -> h.svc.UpdatePublication -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPublicationResponse(pub))
}

// HandleDeletePublication godoc
// @Summary      Delete a publication (poster only)
// @Tags         publications
// @Produce      json
// @Param        publicationID   path      int  true  "publication ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{publicationID} [delete]
// @Security     BearerAuth
func (h *PublicationHandler) HandleDeletePublication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	publicationID, ok := parsePublicationID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeletePublication(ctx.Request.Context(), user.ID, publicationID); err != nil {
		switch {
		case errors.Is(err, service.ErrPublicationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("publication", "ID", publicationID))
		case errors.Is(err, service.ErrNotPublicationOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotPublicationOwner))
		default:
			err = fmt.Errorf("v1.HandleDeletePublication -> h.svc.DeletePublication -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSearchMembers godoc
// @Summary      Search members for tagging
// @Description  Empty query returns the first 50 members; otherwise at most 20 matches.
// @Tags         publications
// @Produce      json
// @Param        q  query     string  false  "search query"
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/search_members [get]
// @Security     BearerAuth
func (h *PublicationHandler) HandleSearchMembers(ctx *gin.Context) {
	users, err := h.svc.SearchMembers(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchMembers -> h.svc.SearchMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleSearchExternals godoc
// @Summary      Search external members for tagging
// @Tags         publications
// @Produce      json
// @Param        q  query     string  false  "search query"
// @Success      200  {array}   domain.External
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/search_externals [get]
// @Security     BearerAuth
func (h *PublicationHandler) HandleSearchExternals(ctx *gin.Context) {
	externals, err := h.svc.SearchExternals(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchExternals -> h.svc.SearchExternals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, externals)
}

func parsePublicationID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("publicationID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidPublicationID))
		return 0, false
	}

	return uint(id), true
}
