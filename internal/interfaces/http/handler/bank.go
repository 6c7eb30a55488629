package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/middleware"
)

// BankHandler handles bank-related API endpoints
type BankHandler struct {
	BaseHandler
	bankService *directoryapp.BankService
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(bankService *directoryapp.BankService) *BankHandler {
	return &BankHandler{
		bankService: bankService,
	}
}

// CreateBankRequest represents a request to register a bank
type CreateBankRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	BranchCode string `json:"branchCode" binding:"required,min=1,max=10"`
}

// Create registers a new bank
func (h *BankHandler) Create(c *gin.Context) {
	var req CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	bank, err := h.bankService.Create(c.Request.Context(), req.Name, req.BranchCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bank)
}

// List returns all banks ordered by name
func (h *BankHandler) List(c *gin.Context) {
	banks, err := h.bankService.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banks)
}

// Search runs a case-insensitive partial match over bank names
func (h *BankHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter name is required")
		return
	}

	banks, err := h.bankService.Search(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banks)
}
