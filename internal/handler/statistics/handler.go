package statistics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/service/statistics"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *statistics.Service
}

func NewHandler(service *statistics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/statistics")
	{
		stats.GET("/daily", h.Daily)
		stats.GET("/active-users", h.ActiveUsers)
		stats.GET("/revenue/monthly", h.MonthlyRevenue)
	}
}

// Daily serves the dashboard cards for one day, defaulting to today.
func (h *Handler) Daily(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	stats, err := h.service.Daily(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) ActiveUsers(c *gin.Context) {
	count, err := h.service.ActiveUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"active_users": count}))
}

func (h *Handler) MonthlyRevenue(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("month must be 1-12"))
		return
	}

	revenue, err := h.service.MonthlyRevenue(c.Request.Context(), year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(revenue))
}
