package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanceled_ActiveContext(t *testing.T) {
	assert.NoError(t, Canceled(context.Background()))
}

func TestCanceled_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, Canceled(ctx), context.Canceled)
}
