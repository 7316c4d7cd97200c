package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// InvoiceHandler обслуживает /api/invoices. Создание отвечает конвертом,
// остальные операции отдают счёт как есть.
type InvoiceHandler struct {
	invoices CRUDStore[models.Invoice]
}

func NewInvoiceHandler(invoices CRUDStore[models.Invoice]) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Register вешает маршруты счетов на группу /api/invoices.
func (h *InvoiceHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/create", h.Create)
	rg.GET("/all", h.List)
	rg.GET("/download/:id", h.Download)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	values, err := common.BindValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), values)
	if err != nil {
		response.Fail(c, err, "Error creating invoice")
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context())
	if err != nil {
		common.RespondLegacyError(c, err, "Error fetching invoices")
		return
	}
	c.JSON(http.StatusOK, nonNil(invoices))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Download отдаёт счёт как JSON-вложение invoice-<номер>.json.
func (h *InvoiceHandler) Download(c *gin.Context) {
	invoice, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", "attachment; filename=invoice-"+invoice.InvoiceNumber+".json")
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.invoices.Update(c.Request.Context(), id, values)
	invoice, err = repocommon.RequireFound(invoice, err, apperror.ErrInvoiceNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error updating invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoices.Delete(c.Request.Context(), id)
	_, err = repocommon.RequireFound(invoice, err, apperror.ErrInvoiceNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error deleting invoice")
		return
	}
	c.String(http.StatusOK, "Invoice deleted")
}

func (h *InvoiceHandler) load(c *gin.Context) (*models.Invoice, bool) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid invoice ID")
		return nil, false
	}

	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	invoice, err = repocommon.RequireFound(invoice, err, apperror.ErrInvoiceNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error fetching invoice")
		return nil, false
	}
	return invoice, true
}
