package directory

import "context"

// ClientRepository provides access to client aggregates. Lookups return
// (nil, nil) when no row matches; callers decide whether that is an error.
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Search(ctx context.Context, field SearchField, value string) ([]*Client, error)
}

// BankNameRepository provides access to the seeded bank reference data.
type BankNameRepository interface {
	Save(ctx context.Context, bank *BankName) error
	FindAll(ctx context.Context) ([]*BankName, error)
	FindByName(ctx context.Context, name string) (*BankName, error)
	SearchByName(ctx context.Context, name string) ([]*BankName, error)
}

// BankingDetailsRepository provides access to client banking details.
type BankingDetailsRepository interface {
	Save(ctx context.Context, details *BankingDetails) error
	FindByAccountNumber(ctx context.Context, accountNumber string) (*BankingDetails, error)
}

// PaymentMethodRepository provides access to the seeded payment methods.
type PaymentMethodRepository interface {
	FindAll(ctx context.Context) ([]*PaymentMethod, error)
	FindByName(ctx context.Context, name MethodType) (*PaymentMethod, error)
}
