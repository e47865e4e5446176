package errorx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	err := New(NotFound, "Not found channel %s", "1")
	require.Equal(t, "Not found channel 1", err.Error())
	require.True(t, Is(err, NotFound))
	require.False(t, Is(err, BadRequest))

	wrapped := fmt.Errorf("fetch: %w", err)
	require.True(t, Is(wrapped, NotFound))
	require.False(t, Is(fmt.Errorf("plain"), NotFound))
}
