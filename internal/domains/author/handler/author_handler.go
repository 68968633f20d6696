package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/service"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the author endpoints under rg
func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	{
		authors.POST("", h.Create)
		authors.GET("", h.List)
		authors.GET("/:id", h.GetByID)
		authors.PATCH("/:id", h.Update)
		authors.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors?limit=20&offset=0&search=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	filter := model.AuthorFilter{
		Search: c.Query("search"),
		Limit:  utils.QueryInt(c, "limit", 0),
		Offset: utils.QueryInt(c, "offset", 0),
	}

	authors, page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := make([]model.AuthorResponse, len(authors))
	for i := range authors {
		data[i] = *authors[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	if vErr, ok := validator.AsError(err); ok {
		response.ValidationError(c, vErr.Field, vErr.Reason)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("author request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
