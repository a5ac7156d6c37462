package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
	"github.com/SscSPs/simple_invoice_app/internal/dto"
	"github.com/SscSPs/simple_invoice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService  portssvc.InvoiceSvcFacade
	documentService portssvc.DocumentSvc
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade, ds portssvc.DocumentSvc) *invoiceHandler {
	return &invoiceHandler{
		invoiceService:  is,
		documentService: ds,
	}
}

// RegisterInvoiceRoutes registers routes related to invoices. The group must
// already carry the auth middleware.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, documentService portssvc.DocumentSvc) {
	h := newInvoiceHandler(invoiceService, documentService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/recent", h.listRecentInvoices)
		invoices.GET("/stats", h.getInvoiceStats)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PATCH("/:invoiceID/status", h.updateInvoiceStatus)
		invoices.POST("/:invoiceID/status/cycle", h.cycleInvoiceStatus)
		invoices.GET("/:invoiceID/pdf", h.downloadInvoicePDF)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates a Pending invoice owned by the logged-in user. dueDate defaults to the date derived from paymentTerms.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create invoice", slog.String("invoice_number", req.InvoiceNumber))
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists the logged-in user's invoices, newest first, one page at a time
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, params)
	if err != nil {
		respondInvoiceError(c, logger, err, "list invoices")
		return
	}

	logger.Info("Invoices listed successfully", slog.Int("count", len(invoices)))
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{
		Invoices:  dto.ToListInvoiceResponse(invoices),
		NextToken: nextToken,
	})
}

// listRecentInvoices godoc
// @Summary Recent invoices
// @Description Returns the five newest invoices of the logged-in user
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recent invoices"
// @Security BearerAuth
// @Router /invoices/recent [get]
func (h *invoiceHandler) listRecentInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := h.invoiceService.ListRecentInvoices(c.Request.Context(), userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "list recent invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoiceStats godoc
// @Summary Dashboard statistics
// @Description Aggregates counts and revenue over all invoices of the logged-in user
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoiceStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute invoice statistics"
// @Security BearerAuth
// @Router /invoices/stats [get]
func (h *invoiceHandler) getInvoiceStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.invoiceService.GetInvoiceStats(c.Request.Context(), userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "compute invoice statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceStatsResponse(stats))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Stored invoice is malformed"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoiceStatus godoc
// @Summary Set the status of an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Stored invoice is malformed"
// @Failure 500 {object} map[string]string "Failed to update invoice status"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), invoiceID, domain.InvoiceStatus(req.Status), userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "update invoice status")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// cycleInvoiceStatus godoc
// @Summary Advance the status of an invoice
// @Description Moves the status one step: Pending to Paid, Paid to Overdue, Overdue to Pending
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Stored invoice is malformed"
// @Failure 500 {object} map[string]string "Failed to update invoice status"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/status/cycle [post]
func (h *invoiceHandler) cycleInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.CycleInvoiceStatus(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "update invoice status")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// downloadInvoicePDF godoc
// @Summary Download an invoice as PDF
// @Tags invoices
// @Produce  application/pdf
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {file} file "invoice_<number>.pdf"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Stored invoice is malformed"
// @Failure 500 {object} map[string]string "Failed to render invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/pdf [get]
func (h *invoiceHandler) downloadInvoicePDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	rendered, err := h.documentService.RenderInvoicePDF(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, logger, err, "render invoice")
		return
	}

	logger.Info("Invoice rendered", slog.String("filename", rendered.Filename), slog.Int("bytes", len(rendered.Content)))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rendered.Filename}))
	c.Data(http.StatusOK, rendered.ContentType, rendered.Content)
}

// respondInvoiceError answers err with the status its kind maps to. Internal
// failures get a static message.
func respondInvoiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Invoice not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMalformedRecord):
		logger.Warn("Stored invoice is malformed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Stored invoice is malformed"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
