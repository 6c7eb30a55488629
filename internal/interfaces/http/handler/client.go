package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/middleware"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *directoryapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *directoryapp.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// CreateClientRequest represents a request to register a client with
// their banking details
type CreateClientRequest struct {
	FullName      string `json:"fullName" binding:"required,min=1,max=200"`
	Email         string `json:"email" binding:"required,email,max=200"`
	PhoneNumber   string `json:"phoneNumber" binding:"required,min=7,max=20"`
	BankName      string `json:"bankName" binding:"required,max=100"`
	AccountNumber string `json:"accountNumber" binding:"required,min=4,max=34"`
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), directoryapp.CreateClientInput{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByEmail returns a client by email, banking details included
func (h *ClientHandler) GetByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		h.BadRequest(c, "Email is required")
		return
	}

	client, err := h.clientService.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// SearchClientsRequest represents the client search query parameters
type SearchClientsRequest struct {
	Term string `form:"term" binding:"required,min=1"`
	By   string `form:"by" binding:"required,oneof=EMAIL PHONE_NUMBER"`
}

// Search runs a partial match over a whitelisted client column
func (h *ClientHandler) Search(c *gin.Context) {
	var req SearchClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	clients, err := h.clientService.Search(c.Request.Context(), directory.SearchField(req.By), req.Term)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, clients)
}
