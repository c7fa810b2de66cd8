package handler

import (
	"net/http"
	"time"

	"flowbit/internal/service"
	"flowbit/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/stats", h.GetOverview)
		api.GET("/vendors/top10", h.GetTopVendors)
		api.GET("/category-spend", h.GetCategorySpend)
		api.GET("/invoice-trends", h.GetInvoiceTrends)
		api.GET("/cash-outflow", h.GetCashOutflow)
	}
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.GetOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}

func (h *StatsHandler) GetTopVendors(c *gin.Context) {
	vendors, err := h.statsService.GetTopVendors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendors))
}

func (h *StatsHandler) GetCategorySpend(c *gin.Context) {
	categories, err := h.statsService.GetCategorySpend(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

func (h *StatsHandler) GetInvoiceTrends(c *gin.Context) {
	trends, err := h.statsService.GetInvoiceTrends(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, trends))
}

// GetCashOutflow returns unpaid invoice totals grouped by due date, with
// optional start/end bounds (RFC3339 or YYYY-MM-DD).
func (h *StatsHandler) GetCashOutflow(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid start date: "+err.Error()))
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid end date: "+err.Error()))
		return
	}

	outflow, err := h.statsService.GetCashOutflow(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, outflow))
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
