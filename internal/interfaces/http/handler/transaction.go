package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	billingapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/middleware"
)

// TransactionHandler handles transaction-related API endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *billingapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *billingapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransactionRequest represents a request to open a transaction
type CreateTransactionRequest struct {
	ClientEmail   string  `json:"clientEmail" binding:"required,email"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Status        string  `json:"status" binding:"omitempty,oneof=PENDING PAID FAILED"`
}

// UpdateTransactionRequest represents a partial update by reference
type UpdateTransactionRequest struct {
	TrxnReference string   `json:"trxnReference" binding:"required,len=15,numeric"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Status        *string  `json:"status" binding:"omitempty,oneof=PENDING PAID FAILED"`
}

// CreateTransactionResponse carries the generated reference
type CreateTransactionResponse struct {
	TrxnReference string `json:"trxnReference"`
}

// Create opens a new transaction and returns its reference
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	reference, err := h.transactionService.Create(c.Request.Context(), billingapp.CreateTransactionInput{
		ClientEmail:   req.ClientEmail,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: directory.MethodType(req.PaymentMethod),
		Status:        billing.TransactionStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateTransactionResponse{TrxnReference: reference})
}

// GetByReference returns a transaction with its client and payment method
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	reference := c.Param("trxnReference")
	if !billing.IsValidReference(reference) {
		h.BadRequest(c, "Transaction reference must be 15 digits")
		return
	}

	trxn, err := h.transactionService.FindByReference(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trxn)
}

// Update applies a partial update to a transaction by reference
func (h *TransactionHandler) Update(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := billingapp.UpdateTransactionInput{}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Status != nil {
		status := billing.TransactionStatus(*req.Status)
		input.Status = &status
	}

	trxn, err := h.transactionService.UpdateByReference(c.Request.Context(), req.TrxnReference, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trxn)
}
