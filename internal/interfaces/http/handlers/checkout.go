// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/checkout"
	"github.com/your-org/mattress-storefront/internal/domain/order"
)

const mimePDF = "application/pdf"

// ReceiptRenderer turns a placed order into a PDF receipt
type ReceiptRenderer interface {
	Enabled() bool
	GenerateReceipt(o *order.Order) (*bytes.Buffer, error)
}

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	receipts        ReceiptRenderer
	config          *config.Config
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, receipts ReceiptRenderer, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		receipts:        receipts,
		config:          cfg,
		logger:          logger,
	}
}

// GetCheckoutSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetCheckoutSummary(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	summary, err := h.checkoutService.GetCheckoutSummary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data":    summary,
	})
}

// ValidateStep handles POST /checkout/steps/:step
func (h *CheckoutHandler) ValidateStep(c *gin.Context) {
	step, err := checkout.ParseStep(c.Param("step"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	input := stepInput(step)
	if err := c.ShouldBindJSON(input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.checkoutService.ValidateStep(step, input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Step is valid",
		"data": gin.H{
			"step":  step,
			"valid": true,
		},
	})
}

// PlaceOrder handles POST /checkout/orders. Clients sending
// Accept: application/pdf get the receipt instead of JSON.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	placed, err := h.checkoutService.PlaceOrder(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if wantsPDF(c) && h.receipts != nil && h.receipts.Enabled() {
		pdfBuffer, err := h.receipts.GenerateReceipt(placed)
		if err == nil {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", placed.OrderNumber))
			c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
			c.Data(http.StatusCreated, mimePDF, pdfBuffer.Bytes())
			return
		}
		// The order is already placed; fall back to the JSON confirmation.
		h.logger.WithError(err).WithField("order_number", placed.OrderNumber).Error("Failed to generate receipt")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

func stepInput(step checkout.Step) interface{} {
	switch step {
	case checkout.StepContact:
		return &checkout.ContactInfo{}
	case checkout.StepShipping:
		return &checkout.ShippingInfo{}
	default:
		return &checkout.PaymentInfo{}
	}
}

func wantsPDF(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), mimePDF)
}
