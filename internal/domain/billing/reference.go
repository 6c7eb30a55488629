package billing

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

const (
	// ReferenceLength is the fixed width of a transaction reference.
	ReferenceLength = 15

	maxReferenceAttempts = 5
)

// ReferenceChecker answers whether a candidate reference is already taken.
type ReferenceChecker interface {
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// ReferenceGenerator mints unique 15-digit numeric transaction references.
// Candidates are drawn at random and checked against storage; generation
// gives up after a bounded number of collisions rather than looping forever.
type ReferenceGenerator struct {
	checker ReferenceChecker
}

// NewReferenceGenerator creates a generator backed by the given checker.
func NewReferenceGenerator(checker ReferenceChecker) *ReferenceGenerator {
	return &ReferenceGenerator{checker: checker}
}

// Generate returns a reference not currently present in storage. Leading
// zeros are valid, so the reference is built digit by digit rather than
// formatted from an integer.
func (g *ReferenceGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		candidate := randomReference()
		exists, err := g.checker.ExistsByReference(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeInvalidState, "Could not generate a unique transaction reference")
}

func randomReference() string {
	var sb strings.Builder
	sb.Grow(ReferenceLength)
	for i := 0; i < ReferenceLength; i++ {
		sb.WriteString(strconv.Itoa(rand.IntN(10)))
	}
	return sb.String()
}

// IsValidReference checks the fixed-width numeric shape of a reference.
func IsValidReference(reference string) bool {
	if len(reference) != ReferenceLength {
		return false
	}
	for _, r := range reference {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
