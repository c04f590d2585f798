package requestid_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gocats/internal/pkg/requestid"
)

func TestWithThenFrom(t *testing.T) {
	ctx := requestid.With(context.Background(), "req-42")

	assert.Equal(t, "req-42", requestid.From(ctx))
	assert.Empty(t, requestid.From(context.Background()))
}
