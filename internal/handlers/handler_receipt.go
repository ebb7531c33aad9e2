package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
	"github.com/shopkhata/shopkhata_backend/internal/middleware"
)

// receiptHandler handles HTTP requests related to receipts and the stock
// projection derived from them.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

// registerReceiptRoutes registers routes related to receipts and inventory.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := &receiptHandler{
		receiptService: receiptService,
		paymentService: paymentService,
	}

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:id", h.getReceipt)
		receipts.PUT("/:id", h.updateReceipt)
		receipts.DELETE("/:id", h.deleteReceipt)
		receipts.GET("/:id/balance", h.getReceiptBalance)
		receipts.GET("/:id/payments", h.listReceiptPayments)
	}

	rg.GET("/inventory", h.listInventory)
}

// createReceipt godoc
// @Summary Create a receipt
// @Description Creates a receipt whole, with its items. The total is recomputed server-side; outbound items are admitted only if stock suffices at commit time.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Insufficient stock; body carries itemName and available"
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustActor(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// getReceipt godoc
// @Summary Get a receipt by ID
// @Description Retrieves a receipt with its items in their original order
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{id} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ReceiptResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListReceipts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponses(receipts))
}

// updateReceipt godoc
// @Summary Update a receipt
// @Description Edits a receipt. A provided item list replaces the old one wholesale; stock is re-checked as if the receipt's previous quantities were first reverted.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Param   receipt body dto.UpdateReceiptRequest true "Fields to update"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Insufficient stock or total below settled amount"
// @Security BearerAuth
// @Router /receipts/{id} [put]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustActor(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// deleteReceipt godoc
// @Summary Delete a receipt
// @Description Removes a receipt and reverts its inventory contribution; rejected while payments reference it
// @Tags receipts
// @Param   id path string true "Receipt ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt has settled payments"
// @Security BearerAuth
// @Router /receipts/{id} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getReceiptBalance godoc
// @Summary Get the settlement position of a receipt
// @Description Returns {total, settled, remaining} for the receipt
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptBalanceResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{id}/balance [get]
func (h *receiptHandler) getReceiptBalance(c *gin.Context) {
	receiptID := c.Param("id")

	balance, err := h.receiptService.GetReceiptBalance(c.Request.Context(), receiptID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReceiptBalanceResponse{
		ReceiptID: receiptID,
		Total:     balance.Total,
		Settled:   balance.Settled,
		Remaining: balance.Remaining,
	})
}

// listReceiptPayments godoc
// @Summary List payments settling a receipt
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {array} dto.PaymentResponse
// @Security BearerAuth
// @Router /receipts/{id}/payments [get]
func (h *receiptHandler) listReceiptPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPaymentsByReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// listInventory godoc
// @Summary List the stock projection
// @Description Retrieves per-item quantities in, out and available
// @Tags inventory
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.InventoryLineResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *receiptHandler) listInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInventory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	lines, err := h.receiptService.ListInventory(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.InventoryLineResponse, len(lines))
	for i, l := range lines {
		out[i] = dto.ToInventoryLineResponse(l)
	}
	c.JSON(http.StatusOK, out)
}
