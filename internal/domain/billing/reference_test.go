package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

type fakeChecker struct {
	calls   int
	answers []bool
	err     error
}

func (f *fakeChecker) ExistsByReference(_ context.Context, _ string) (bool, error) {
	defer func() { f.calls++ }()
	if f.err != nil {
		return false, f.err
	}
	if f.calls < len(f.answers) {
		return f.answers[f.calls], nil
	}
	return false, nil
}

func TestReferenceGeneratorProducesValidReferences(t *testing.T) {
	gen := NewReferenceGenerator(&fakeChecker{})

	for i := 0; i < 50; i++ {
		ref, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.True(t, IsValidReference(ref), "reference %q is not 15 numeric digits", ref)
	}
}

func TestReferenceGeneratorRetriesOnCollision(t *testing.T) {
	checker := &fakeChecker{answers: []bool{true, true, false}}
	gen := NewReferenceGenerator(checker)

	ref, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, IsValidReference(ref))
	assert.Equal(t, 3, checker.calls)
}

func TestReferenceGeneratorGivesUpAfterBoundedAttempts(t *testing.T) {
	checker := &fakeChecker{answers: []bool{true, true, true, true, true, true, true}}
	gen := NewReferenceGenerator(checker)

	_, err := gen.Generate(context.Background())
	require.Error(t, err)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, shared.CodeInvalidState, de.Code)
	assert.Equal(t, maxReferenceAttempts, checker.calls)
}

func TestReferenceGeneratorPropagatesCheckerError(t *testing.T) {
	checker := &fakeChecker{err: errors.New("connection refused")}
	gen := NewReferenceGenerator(checker)

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, checker.calls)
}

func TestIsValidReference(t *testing.T) {
	assert.True(t, IsValidReference("012345678901234"))
	assert.False(t, IsValidReference("12345"))
	assert.False(t, IsValidReference("01234567890123a"))
	assert.False(t, IsValidReference(""))
	assert.False(t, IsValidReference("0123456789012345"))
}
