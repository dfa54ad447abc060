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

// purchaseHandler handles HTTP requests related to supplier purchases and
// their payments.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// newPurchaseHandler creates a new purchaseHandler.
func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.DELETE("/:id", h.deletePurchase)

		purchases.POST("/:id/payments", h.recordPayment)
		purchases.GET("/:id/payments", h.listPayments)
		purchases.DELETE("/:id/payments/:paymentID", h.deletePayment)
	}
}

// createPurchase godoc
// @Summary Create a new purchase
// @Description Creates a supplier purchase with independent product and transport balances, optionally recording an initial combined payment
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create purchase"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
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
	logger.Info("Received request to create purchase", slog.String("supplier_name", req.SupplierName), slog.String("product_name", req.ProductName))

	newPurchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create purchase in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase"})
		}
		return
	}

	logger.Info("Purchase created successfully", slog.String("purchase_id", newPurchase.PurchaseID))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(newPurchase))
}

// getPurchase godoc
// @Summary Get a purchase by ID
// @Description Retrieves a purchase with its payment history
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve purchase"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		} else {
			logger.Error("Failed to get purchase", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Description Lists purchases, optionally filtered by supplier or settlement status
// @Tags purchases
// @Produce  json
// @Param   supplierID query string false "Supplier ID filter"
// @Param   status query string false "Status filter (pending, cleared)"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list purchases"
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListPurchasesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to list purchases", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponses(purchases))
}

// deletePurchase godoc
// @Summary Delete a purchase
// @Description Deletes a fully settled purchase, cascading to its payment entries
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 409 {object} ErrorResponse "Purchase not fully settled"
// @Failure 500 {object} ErrorResponse "Failed to delete purchase"
// @Security BearerAuth
// @Router /purchases/{id} [delete]
func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("purchase_id", purchaseID), slog.String("user_id", userID))
	logger.Info("Received request to delete purchase")

	err := h.purchaseService.DeletePurchase(c.Request.Context(), purchaseID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Purchase deletion blocked", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
		}
		return
	}

	logger.Info("Purchase deleted successfully")
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a purchase
// @Description Appends a combined product/transport entry to the purchase's ledger; at least one amount must be positive
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   payment body dto.RecordPurchasePaymentRequest true "Payment details"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse "Invalid amounts"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /purchases/{id}/payments [post]
func (h *purchaseHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	var req dto.RecordPurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("purchase_id", purchaseID), slog.String("user_id", userID))
	logger.Info("Received request to record purchase payment", slog.String("amount", req.Amount.String()), slog.String("transport_amount", req.TransportAmount.String()))

	purchase, err := h.purchaseService.RecordPayment(c.Request.Context(), purchaseID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Payment rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Purchase payment recorded successfully")
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// listPayments godoc
// @Summary List a purchase's payments
// @Description Retrieves the purchase's payment history in chronological order
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {array} dto.PurchasePaymentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 500 {object} ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /purchases/{id}/payments [get]
func (h *purchaseHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	payments, err := h.purchaseService.ListPayments(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		} else {
			logger.Error("Failed to list purchase payments", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		}
		return
	}

	responses := make([]dto.PurchasePaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPurchasePaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, responses)
}

// deletePayment godoc
// @Summary Delete a payment from a purchase
// @Description Removes a payment entry and reprojects both balance pairs; the chronologically first entry is protected while later entries exist
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Purchase or payment not found"
// @Failure 409 {object} ErrorResponse "Protected initial entry"
// @Failure 500 {object} ErrorResponse "Failed to delete payment"
// @Security BearerAuth
// @Router /purchases/{id}/payments/{paymentID} [delete]
func (h *purchaseHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")
	paymentID := c.Param("paymentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("purchase_id", purchaseID), slog.String("payment_id", paymentID))
	logger.Info("Received request to delete purchase payment")

	purchase, err := h.purchaseService.DeletePayment(c.Request.Context(), purchaseID, paymentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProtectedEntry):
			logger.Warn("Attempt to delete protected initial entry")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase or payment not found"})
		default:
			logger.Error("Failed to delete payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		}
		return
	}

	logger.Info("Purchase payment deleted successfully")
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}
