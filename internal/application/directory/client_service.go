package directory

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const clientCachePrefix = "client:"

// CreateClientInput carries the data for registering a client together
// with their bank account.
type CreateClientInput struct {
	FullName      string
	Email         string
	PhoneNumber   string
	BankName      string
	AccountNumber string
}

// ClientService manages clients and their linked banking details.
type ClientService struct {
	clients        directory.ClientRepository
	bankingDetails *BankingDetailsService
	cache          cache.Store
	entityTTL      time.Duration
	logger         *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clients directory.ClientRepository,
	bankingDetails *BankingDetailsService,
	store cache.Store,
	entityTTL time.Duration,
	logger *zap.Logger,
) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clients:        clients,
		bankingDetails: bankingDetails,
		cache:          store,
		entityTTL:      entityTTL,
		logger:         logger,
	}
}

// Create registers a client. Banking details are created idempotently
// from the nested bank name and account number; a duplicate email is a
// conflict.
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*directory.Client, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Email is required")
	}

	existing, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.Conflictf("Client with email %s already exists", email)
	}

	details, err := s.bankingDetails.Create(ctx, input.BankName, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	client := directory.NewClient(input.FullName, email, input.PhoneNumber, details)
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, clientCachePrefix+email, client, s.entityTTL); err != nil {
		s.logger.Warn("Failed to cache client", zap.String("email", email), zap.Error(err))
	}

	s.logger.Info("Client created",
		zap.String("email", email),
		zap.String("full_name", client.FullName))
	return client, nil
}

// FindByEmail is a cache-aside read with banking details joined;
// NotFound when absent.
func (s *ClientService) FindByEmail(ctx context.Context, email string) (*directory.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	key := clientCachePrefix + email

	cached, ok, err := cache.GetJSON[*directory.Client](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read client from cache", zap.String("email", email), zap.Error(err))
	}
	if ok && cached != nil {
		return cached, nil
	}

	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NotFoundf("Client with email %s not found", email)
	}

	if err := cache.SetJSON(ctx, s.cache, key, client, s.entityTTL); err != nil {
		s.logger.Warn("Failed to cache client", zap.String("email", email), zap.Error(err))
	}
	return client, nil
}

// Search runs a case-insensitive partial match against the chosen field.
func (s *ClientService) Search(ctx context.Context, field directory.SearchField, value string) ([]*directory.Client, error) {
	if !field.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown search field: "+string(field))
	}
	return s.clients.Search(ctx, field, strings.TrimSpace(value))
}
