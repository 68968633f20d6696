package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
)

type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(svc service.ServiceInterface) *PostHandler {
	return &PostHandler{
		service: svc,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.GET("/:id", h.GetByID)
		posts.PATCH("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}

// POST /v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p.ToResponse())
}

// GET /v1/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// GET /v1/posts?category=Fiction&category=Non-Fiction&limit=20&offset=0
func (h *PostHandler) List(c *gin.Context) {
	filter := model.PostFilter{
		Categories: c.QueryArray("category"),
		Limit:      utils.QueryInt(c, "limit", 0),
		Offset:     utils.QueryInt(c, "offset", 0),
	}

	posts, page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := make([]model.PostResponse, len(posts))
	for i := range posts {
		data[i] = *posts[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

// PATCH /v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// DELETE /v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
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

func (h *PostHandler) fail(c *gin.Context, err error) {
	if vErr, ok := validator.AsError(err); ok {
		response.ValidationError(c, vErr.Field, vErr.Reason)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("post request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
