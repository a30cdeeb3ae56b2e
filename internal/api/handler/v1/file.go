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
	errNotFileOwner  = errors.New("ce fichier ne vous appartient pas")
	errInvalidFileID = errors.New("invalid file ID")
)

type FileService interface {
	UploadFile(ctx context.Context, file domain.UserFile) (domain.UserFile, error)
	MyFiles(ctx context.Context, userID uint) ([]domain.UserFile, error)
	GetFile(ctx context.Context, callerID, id uint) (domain.UserFile, error)
	RenameFile(ctx context.Context, callerID, id uint, name string) (domain.UserFile, error)
	DeleteFile(ctx context.Context, callerID, id uint) (domain.UserFile, error)
}

type FileHandler struct {
	svc   FileService
	uSvc  UserService
	media MediaStore
}

func NewFileHandler(svc FileService, uSvc UserService, media MediaStore) *FileHandler {
	return &FileHandler{
		svc:   svc,
		uSvc:  uSvc,
		media: media,
	}
}

// HandleListFiles godoc
// @Summary      List the caller's uploaded files
// @Tags         files
// @Produce      json
// @Success      200  {array}   domain.UserFile
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /files [get]
// @Security     BearerAuth
func (h *FileHandler) HandleListFiles(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	files, err := h.svc.MyFiles(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListFiles -> h.svc.MyFiles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, files)
}

// HandleUploadFile godoc
// @Summary      Upload a file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true  "file"
// @Param        name  formData  string  false "display name"
// @Success      201  {object}  domain.UserFile
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /files [post]
// @Security     BearerAuth
func (h *FileHandler) HandleUploadFile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingFile))
		return
	}

	url, err := h.media.Save("user_files", header)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadFile -> h.media.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	name := ctx.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	file, err := h.svc.UploadFile(ctx.Request.Context(), domain.UserFile{
		Name:       name,
		File:       url,
		UploadedBy: user.ID,
		FileType:   header.Header.Get("Content-Type"),
		Size:       header.Size,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadFile -> h.svc.UploadFile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, file)
}

// HandleGetFile godoc
// @Summary      Get one of the caller's files
// @Tags         files
// @Produce      json
// @Param        fileID   path      int  true  "file ID"
// @Success      200  {object}  domain.UserFile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /files/{fileID} [get]
// @Security     BearerAuth
func (h *FileHandler) HandleGetFile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	file, err := h.svc.GetFile(ctx.Request.Context(), user.ID, fileID)
	if err != nil {
		h.renderFileErr(ctx, err, fileID, "v1.HandleGetFile")
		return
	}

	ctx.JSON(http.StatusOK, file)
}

// HandleRenameFile godoc
// @Summary      Rename one of the caller's files
// @Tags         files
// @Produce      json
// @Param        fileID   path      int  true  "file ID"
// @Param        request  body      request.RenameFileRequest true "request body"
// @Success      200  {object}  domain.UserFile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /files/{fileID} [patch]
// @Security     BearerAuth
func (h *FileHandler) HandleRenameFile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	var req request.RenameFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := h.svc.RenameFile(ctx.Request.Context(), user.ID, fileID, req.Name)
	if err != nil {
		h.renderFileErr(ctx, err, fileID, "v1.HandleRenameFile")
		return
	}

	ctx.JSON(http.StatusOK, file)
}

// HandleDeleteFile godoc
// @Summary      Delete one of the caller's files
// @Tags         files
// @Produce      json
// @Param        fileID   path      int  true  "file ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /files/{fileID} [delete]
// @Security     BearerAuth
func (h *FileHandler) HandleDeleteFile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileID, ok := parseFileID(ctx)
	if !ok {
		return
	}

	file, err := h.svc.DeleteFile(ctx.Request.Context(), user.ID, fileID)
	if err != nil {
		h.renderFileErr(ctx, err, fileID, "v1.HandleDeleteFile")
		return
	}

	// Blob removal is best-effort, the row is already gone.
	if err := h.media.Remove(file.File); err != nil {
		err = fmt.Errorf("v1.HandleDeleteFile -> h.media.Remove -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *FileHandler) renderFileErr(ctx *gin.Context, err error, fileID uint, op string) {
	switch {
	case errors.Is(err, service.ErrFileNotFound):
		response.RenderErr(ctx, response.ErrNotFound("file", "ID", fileID))
	case errors.Is(err, service.ErrNotFileOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotFileOwner))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

func parseFileID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("fileID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidFileID))
		return 0, false
	}

	return uint(id), true
}
