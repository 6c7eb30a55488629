package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/directory"
)

// PaymentMethodHandler handles payment method API endpoints
type PaymentMethodHandler struct {
	BaseHandler
	paymentMethodService *directoryapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(paymentMethodService *directoryapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentMethodService: paymentMethodService,
	}
}

// List returns the supported payment methods
func (h *PaymentMethodHandler) List(c *gin.Context) {
	methods, err := h.paymentMethodService.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, methods)
}
