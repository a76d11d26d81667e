package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/settings"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the read side; the admin-only write side is
// registered separately so the router can gate it by role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	s := r.Group("/settings")
	{
		s.GET("", h.Get)
		s.GET("/dynamic-fields", h.ListDynamicFields)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	s := r.Group("/settings")
	{
		s.PUT("", h.Update)
		s.POST("/dynamic-fields", h.CreateDynamicField)
	}
}

func (h *Handler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(setting))
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) ListDynamicFields(c *gin.Context) {
	formType := model.FormType(c.Query("form_type"))
	if formType == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("form_type is required"))
		return
	}

	fields, err := h.service.ListDynamicFields(c.Request.Context(), formType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(fields))
}

func (h *Handler) CreateDynamicField(c *gin.Context) {
	var req model.CreateDynamicFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	field, err := h.service.CreateDynamicField(c.Request.Context(), actorID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(field))
}

func actorID(c *gin.Context) int64 {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
