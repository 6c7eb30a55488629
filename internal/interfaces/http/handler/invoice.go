package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	billingapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// InvoiceItemRequest represents one requested line item. Any total sent
// by the client is ignored; totals are recomputed server-side.
type InvoiceItemRequest struct {
	SKU         string  `json:"sku" binding:"required,max=50"`
	ItemName    string  `json:"itemName" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=500"`
	Quantity    int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
}

// InvoiceRequest is the dual-mode invoice payload. With flag=true it
// creates an invoice (and a transaction when the reference is absent or
// unknown); otherwise it revises an existing one.
type InvoiceRequest struct {
	TrxnReference string               `json:"trxnReference" binding:"omitempty,len=15,numeric"`
	Amount        *float64             `json:"amount" binding:"omitempty,gt=0"`
	Status        *string              `json:"status" binding:"omitempty,oneof=PENDING PAID FAILED"`
	Reason        string               `json:"reason" binding:"max=500"`
	Items         []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
	ClientEmail   string               `json:"clientEmail" binding:"omitempty,email"`
	PaymentMethod string               `json:"paymentMethod"`
}

// Submit is the legacy dual-mode entry point: POST /invoice?flag=true
// creates, any other flag value revises.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if c.Query("flag") == "true" {
		h.create(c, req)
		return
	}
	h.revise(c, req)
}

func (h *InvoiceHandler) create(c *gin.Context, req InvoiceRequest) {
	input := billingapp.CreateInvoiceInput{
		Reason:        req.Reason,
		TrxnReference: req.TrxnReference,
		Transaction: billingapp.CreateTransactionInput{
			ClientEmail:   req.ClientEmail,
			PaymentMethod: directory.MethodType(req.PaymentMethod),
		},
	}
	if req.Amount != nil {
		input.BaseAmount = decimal.NewFromFloat(*req.Amount)
		input.Transaction.Amount = input.BaseAmount
	}
	if req.Status != nil {
		status := billing.TransactionStatus(*req.Status)
		input.Status = &status
		input.Transaction.Status = status
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, billingapp.InvoiceItemInput{
			SKU:         item.SKU,
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

func (h *InvoiceHandler) revise(c *gin.Context, req InvoiceRequest) {
	if req.TrxnReference == "" {
		h.BadRequest(c, "Transaction reference is required when revising an invoice")
		return
	}

	input := billingapp.ReviseInvoiceInput{
		TrxnReference: req.TrxnReference,
		Reason:        req.Reason,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Status != nil {
		status := billing.TransactionStatus(*req.Status)
		input.Status = &status
	}

	invoice, err := h.invoiceService.ReviseInvoice(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByReference returns the invoice attached to a transaction
func (h *InvoiceHandler) GetByReference(c *gin.Context) {
	reference := c.Param("trxnReference")
	if !billing.IsValidReference(reference) {
		h.BadRequest(c, "Transaction reference must be 15 digits")
		return
	}

	invoice, err := h.invoiceService.FindByTransactionReference(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListInvoicesRequest represents the invoice listing query parameters
type ListInvoicesRequest struct {
	TrxnReference string `form:"trxnReference" binding:"omitempty,len=15,numeric"`
	IsFinalState  *bool  `form:"isFinalState"`
	SortBy        string `form:"sortBy" binding:"omitempty,oneof=createdAt expiresAt"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List returns a filtered, paged invoice listing
func (h *InvoiceHandler) List(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := billing.InvoiceFilter{
		TrxnReference: req.TrxnReference,
		IsFinalState:  req.IsFinalState,
		SortBy:        billing.SortField(req.SortBy),
		Page:          req.Page,
		Limit:         req.Limit,
	}
	filter.Normalize()

	listing, err := h.invoiceService.FindInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, listing.Items, listing.Total, filter.Page, filter.Limit)
}
