package handler

import (
	"net/http"

	"flowbit/internal/service"
	"flowbit/pkg/pagination"
	"flowbit/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", h.ListInvoices)
	}
}

// ListInvoices returns a paginated list of invoices, searchable by invoice
// number, vendor name, or customer name and filterable by status.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.InvoiceFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	rows, total, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"rows":      rows,
		"total":     total,
		"page":      params.Page,
		"page_size": params.Limit,
	}))
}
