package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/request"
	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

type SiteContentService interface {
	Get(ctx context.Context) (domain.SiteContent, error)
	Update(ctx context.Context, content domain.SiteContent) (domain.SiteContent, error)
}

type SiteContentHandler struct {
	svc  SiteContentService
	uSvc UserService
}

func NewSiteContentHandler(svc SiteContentService, uSvc UserService) *SiteContentHandler {
	return &SiteContentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetSiteContent godoc
// @Summary      Get the site-wide content singleton
// @Tags         site-content
// @Produce      json
// @Success      200  {object}  domain.SiteContent
// @Failure      500  {object}  response.Err
// @Router       /site-content [get]
func (h *SiteContentHandler) HandleGetSiteContent(ctx *gin.Context) {
	content, err := h.svc.Get(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSiteContent -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, content)
}

// HandleUpdateSiteContent godoc
// @Summary      Update the site-wide content singleton
// @Tags         site-content
// @Produce      json
// @Param        request  body      request.UpdateSiteContentRequest true "request body"
// @Success      200  {object}  domain.SiteContent
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /site-content [put]
// @Security     BearerAuth
func (h *SiteContentHandler) HandleUpdateSiteContent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !service.Allowed(user, service.ResourceSiteContent, service.ActionWrite) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotStaff))
		return
	}

	var req request.UpdateSiteContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	content, err := h.svc.Update(ctx.Request.Context(), domain.SiteContent{
		ContactAddress:         req.ContactAddress,
		ContactPhone:           req.ContactPhone,
		ContactEmail:           req.ContactEmail,
		ContactHours:           req.ContactHours,
		FooterResearchDomains:  req.FooterResearchDomains,
		FooterTeamIntroduction: req.FooterTeamIntroduction,
		FooterTeamName:         req.FooterTeamName,
		FooterCopyright:        req.FooterCopyright,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateSiteContent -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, content)
}
