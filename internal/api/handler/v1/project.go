package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/request"
	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

var (
	errProjectAccess    = errors.New("vous n'avez pas accès à ce projet")
	errInvalidProjectID = errors.New("invalid project ID")
	errMissingFile      = errors.New("aucun fichier fourni")
)

type ProjectService interface {
	ListProjects(ctx context.Context, userID uint) ([]domain.Project, error)
	GetProject(ctx context.Context, id, userID uint) (domain.Project, error)
	CreateProject(ctx context.Context, project domain.Project) (domain.Project, error)
	UpdateProject(ctx context.Context, userID uint, project domain.Project) (domain.Project, error)
	DeleteProject(ctx context.Context, id, userID uint) error
	AddTeamMember(ctx context.Context, projectID, callerID, userID uint) error
	RemoveTeamMember(ctx context.Context, projectID, callerID, userID uint) error
	CreateDocument(ctx context.Context, callerID uint, doc domain.ProjectDocument) (domain.ProjectDocument, error)
	ListDocuments(ctx context.Context, projectID uint) ([]domain.ProjectDocument, error)
	GetDocument(ctx context.Context, id uint) (domain.ProjectDocument, error)
	DeleteDocument(ctx context.Context, callerID, id uint) error
}

type ProjectHandler struct {
	svc   ProjectService
	uSvc  UserService
	media MediaStore
}

func NewProjectHandler(svc ProjectService, uSvc UserService, media MediaStore) *ProjectHandler {
	return &ProjectHandler{
		svc:   svc,
		uSvc:  uSvc,
		media: media,
	}
}

// HandleListProjects godoc
// @Summary      List projects visible to the caller
// @Tags         projects
// @Produce      json
// @Success      200  {array}   response.ProjectResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects [get]
// @Security     BearerAuth
func (h *ProjectHandler) HandleListProjects(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projects, err := h.svc.ListProjects(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListProjects -> h.svc.ListProjects -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewProjectsResponse(projects))
}

// HandleGetProject godoc
// @Summary      Get a project by ID
// @Tags         projects
// @Produce      json
// @Param        projectID   path      int  true  "project ID"
// @Success      200  {object}  response.ProjectResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID} [get]
// @Security     BearerAuth
func (h *ProjectHandler) HandleGetProject(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	project, err := h.svc.GetProject(ctx.Request.Context(), projectID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			// Invisible rows and missing rows are indistinguishable.
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
			return
		}

		err = fmt.Errorf("v1.HandleGetProject -> h.svc.GetProject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewProjectResponse(project))
}

// HandleCreateProject godoc
// @Summary      Create a project
// @Tags         projects
// @Produce      json
// @Param        request  body      request.CreateProjectRequest true "request body"
// @Success      201  {object}  response.ProjectResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleCreateProject(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	project, err := h.svc.CreateProject(ctx.Request.Context(), domain.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   user.ID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateProject -> h.svc.CreateProject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewProjectResponse(project))
}

// HandleUpdateProject godoc
// @Summary      Update a project
// @Tags         projects
// @Produce      json
// @Param        projectID   path      int  true  "project ID"
// @Param        request  body      request.UpdateProjectRequest true "request body"
// @Success      200  {object}  response.ProjectResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID} [put]
// @Security     BearerAuth
func (h *ProjectHandler) HandleUpdateProject(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var req request.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	project, err := h.svc.UpdateProject(ctx.Request.Context(), user.ID, domain.Project{
		ID:          projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateProject -> h.svc.UpdateProject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewProjectResponse(project))
}

// HandleDeleteProject godoc
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        projectID   path      int  true  "project ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID} [delete]
// @Security     BearerAuth
func (h *ProjectHandler) HandleDeleteProject(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteProject(ctx.Request.Context(), projectID, user.ID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteProject -> h.svc.DeleteProject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddTeamMember godoc
// @Summary      Add a member to a project team
// @Tags         projects
// @Produce      json
// @Param        projectID   path      int  true  "project ID"
// @Param        request  body      request.TeamMemberRequest true "request body"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID}/add_team_member [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleAddTeamMember(ctx *gin.Context) {
	h.handleTeamMember(ctx, h.svc.AddTeamMember, "membre ajouté à l'équipe")
}

// HandleRemoveTeamMember godoc
// @Summary      Remove a member from a project team
// @Tags         projects
// @Produce      json
// @Param        projectID   path      int  true  "project ID"
// @Param        request  body      request.TeamMemberRequest true "request body"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID}/remove_team_member [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleRemoveTeamMember(ctx *gin.Context) {
	h.handleTeamMember(ctx, h.svc.RemoveTeamMember, "membre retiré de l'équipe")
}

func (h *ProjectHandler) handleTeamMember(ctx *gin.Context, op func(context.Context, uint, uint, uint) error, okMsg string) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var req request.TeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := op(ctx.Request.Context(), projectID, user.ID, req.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
		case errors.Is(err, service.ErrProjectAccessDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(errProjectAccess))
		default:
			err = fmt.Errorf("v1.handleTeamMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": okMsg})
}

// HandleListDocuments godoc
// @Summary      List documents of one project
// @Description  Requires the project_id query parameter; without it the list is empty.
// @Tags         project-documents
// @Produce      json
// @Param        project_id  query     int  false  "project ID"
// @Success      200  {array}   domain.ProjectDocument
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /project-documents [get]
// @Security     BearerAuth
func (h *ProjectHandler) HandleListDocuments(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, _ := strconv.ParseUint(ctx.Query("project_id"), 10, 32)

	docs, err := h.svc.ListDocuments(ctx.Request.Context(), uint(projectID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListDocuments -> h.svc.ListDocuments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, docs)
}

// HandleCreateDocument godoc
// @Summary      Upload a document to a project
// @Tags         project-documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        project_id  formData  int     true  "project ID"
// @Param        file        formData  file    true  "document"
// @Param        name        formData  string  false "display name"
// @Success      201  {object}  domain.ProjectDocument
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /project-documents [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleCreateDocument(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, err := strconv.ParseUint(ctx.PostForm("project_id"), 10, 32)
	if err != nil || projectID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidProjectID))
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingFile))
		return
	}

	url, err := h.media.Save("project_documents", header)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateDocument -> h.media.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	name := ctx.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	doc, err := h.svc.CreateDocument(ctx.Request.Context(), user.ID, domain.ProjectDocument{
		ProjectID:  uint(projectID),
		Name:       name,
		File:       url,
		UploadedBy: user.ID,
		FileType:   header.Header.Get("Content-Type"),
		Size:       header.Size,
	})
	if err != nil {
		// No row was created, so the stored blob would be orphaned.
		if removeErr := h.media.Remove(url); removeErr != nil {
			zap.L().Warn("remove rejected document upload", zap.Error(removeErr))
		}

		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
		case errors.Is(err, service.ErrProjectAccessDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(errProjectAccess))
		default:
			err = fmt.Errorf("v1.HandleCreateDocument -> h.svc.CreateDocument -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, doc)
}

// HandleGetDocument godoc
// @Summary      Get a project document
// @Tags         project-documents
// @Produce      json
// @Param        documentID  path      int  true  "document ID"
// @Success      200  {object}  domain.ProjectDocument
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /project-documents/{documentID} [get]
// @Security     BearerAuth
func (h *ProjectHandler) HandleGetDocument(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	documentID, err := strconv.ParseUint(ctx.Param("documentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid document ID")))
		return
	}

	doc, err := h.svc.GetDocument(ctx.Request.Context(), uint(documentID))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("document", "ID", documentID))
			return
		}

		err = fmt.Errorf("v1.HandleGetDocument -> h.svc.GetDocument -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, doc)
}

// HandleDeleteDocument godoc
// @Summary      Delete a project document
// @Tags         project-documents
// @Produce      json
// @Param        documentID  path      int  true  "document ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /project-documents/{documentID} [delete]
// @Security     BearerAuth
func (h *ProjectHandler) HandleDeleteDocument(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	documentID, err := strconv.ParseUint(ctx.Param("documentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid document ID")))
		return
	}

	if err = h.svc.DeleteDocument(ctx.Request.Context(), user.ID, uint(documentID)); err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("document", "ID", documentID))
		case errors.Is(err, service.ErrProjectAccessDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(errProjectAccess))
		default:
			err = fmt.Errorf("v1.HandleDeleteDocument -> h.svc.DeleteDocument -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseProjectID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("projectID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidProjectID))
		return 0, false
	}

	return uint(id), true
}
