package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/middleware"

	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
)

// saleHandler handles HTTP requests related to sales, their payments, and
// their returns.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.DELETE("/:id", h.deleteSale)

		sales.POST("/:id/payments", h.recordPayment)
		sales.DELETE("/:id/payments/:paymentID", h.deletePayment)

		sales.POST("/:id/returns", h.createReturn)
	}

	returns := rg.Group("/returns")
	{
		returns.DELETE("/:id", h.deleteReturn)
	}
}

// createSale godoc
// @Summary Create a new sale
// @Description Creates a sale with its item lines, optionally recording an initial payment as the first ledger entry
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse "Failed to create sale"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create sale", slog.String("customer_name", req.CustomerName), slog.Int("item_count", len(req.Items)))

	newSale, err := h.saleService.CreateSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrDuplicateLine):
			logger.Warn("Validation error creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	logger.Info("Sale created successfully", slog.String("sale_id", newSale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(newSale))
}

// getSale godoc
// @Summary Get a sale by ID
// @Description Retrieves a sale with its items, payment history, and returns
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			logger.Error("Failed to get sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Lists sales, optionally filtered by sale ID, customer name/phone, or status
// @Tags sales
// @Produce  json
// @Param   saleID query string false "Sale ID filter"
// @Param   customerName query string false "Customer name search"
// @Param   customerPhone query string false "Customer phone filter"
// @Param   status query string false "Status filter (PAID, PARTIAL, UNPAID)"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.SaleResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list sales"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Deletes a fully paid sale with no returns, restoring product stock
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 409 {object} ErrorResponse "Sale not fully paid or has returns"
// @Failure 500 {object} ErrorResponse "Failed to delete sale"
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("user_id", userID))
	logger.Info("Received request to delete sale")

	err := h.saleService.DeleteSale(c.Request.Context(), saleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Sale deletion blocked", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		}
		return
	}

	logger.Info("Sale deleted successfully")
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a sale
// @Description Appends a payment entry to the sale's ledger; the amount must not exceed the remaining balance
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   payment body dto.RecordSalePaymentRequest true "Payment details"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Invalid or excessive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /sales/{id}/payments [post]
func (h *saleHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.RecordSalePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("user_id", userID))
	logger.Info("Received request to record sale payment", slog.String("amount", req.Amount.String()))

	sale, err := h.saleService.RecordPayment(c.Request.Context(), saleID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrPaymentExceedsDue):
			logger.Warn("Payment rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Sale payment recorded successfully")
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deletePayment godoc
// @Summary Delete a payment from a sale
// @Description Removes a payment entry and reprojects the sale's balances; the chronologically first entry is protected while later entries exist
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Sale or payment not found"
// @Failure 409 {object} ErrorResponse "Protected initial entry"
// @Failure 500 {object} ErrorResponse "Failed to delete payment"
// @Security BearerAuth
// @Router /sales/{id}/payments/{paymentID} [delete]
func (h *saleHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")
	paymentID := c.Param("paymentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("payment_id", paymentID))
	logger.Info("Received request to delete sale payment")

	sale, err := h.saleService.DeletePayment(c.Request.Context(), saleID, paymentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProtectedEntry):
			logger.Warn("Attempt to delete protected initial entry")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale or payment not found"})
		default:
			logger.Error("Failed to delete payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		}
		return
	}

	logger.Info("Sale payment deleted successfully")
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// createReturn godoc
// @Summary Record a return against a sale
// @Description Returns a subset of a sale's items; the refund includes each item's apportioned profit share
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   return body dto.CreateReturnRequest true "Return details"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} ErrorResponse "Invalid items or quantities"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse "Failed to process return"
// @Security BearerAuth
// @Router /sales/{id}/returns [post]
func (h *saleHandler) createReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("user_id", userID))
	logger.Info("Received request to process return", slog.Int("item_count", len(req.Items)))

	ret, err := h.saleService.ProcessReturn(c.Request.Context(), saleID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrItemNotInSale),
			errors.Is(err, services.ErrReturnExceedsSold),
			errors.Is(err, services.ErrDuplicateLine):
			logger.Warn("Return rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process return"})
		}
		return
	}

	logger.Info("Return processed successfully", slog.String("return_id", ret.ReturnID))
	c.JSON(http.StatusCreated, dto.ToReturnResponse(ret))
}

// deleteReturn godoc
// @Summary Delete a return
// @Description Reverses a return in full: restores the sale's amounts and item lines, re-decrements stock, and removes the refund entry
// @Tags sales
// @Produce  json
// @Param   id path string true "Return ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Return not found"
// @Failure 500 {object} ErrorResponse "Failed to delete return"
// @Security BearerAuth
// @Router /returns/{id} [delete]
func (h *saleHandler) deleteReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("return_id", returnID), slog.String("user_id", userID))
	logger.Info("Received request to delete return")

	sale, err := h.saleService.DeleteReturn(c.Request.Context(), returnID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Return not found"})
		} else {
			logger.Error("Failed to delete return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete return"})
		}
		return
	}

	logger.Info("Return deleted successfully", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
