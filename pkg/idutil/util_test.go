package idutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "", want: false},
		{id: "123456789012345", want: false},
		{id: "1234567890123456", want: false},
		{id: "12345678901234567", want: true},
		{id: "123456789012345678", want: true},
		{id: "1234567890123456789", want: false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, IsValidID(tt.id), tt.id)
	}
}

func TestCreatedAt(t *testing.T) {
	// 175928847299117063 >> 22 = 41944705796.
	got, err := CreatedAt("175928847299117063")
	require.NoError(t, err)
	require.Equal(t, time.UnixMilli(41944705796+DiscordEpoch).UTC(), got)
	require.Equal(t, 2016, got.Year())

	_, err = CreatedAt("not-an-id")
	require.Error(t, err)
}

func TestNonceGenerator(t *testing.T) {
	g, err := NewNonceGenerator(1)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := g.Next()
		require.False(t, seen[n])
		seen[n] = true
	}

	_, err = NewNonceGenerator(-1)
	require.Error(t, err)
}

func TestNonceGenerator_Concurrent(t *testing.T) {
	g, err := NewNonceGenerator(2)
	require.NoError(t, err)

	const workers, perWorker = 8, 50
	nonces := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				nonces <- g.Next()
			}
		}()
	}
	wg.Wait()
	close(nonces)

	seen := map[string]bool{}
	for n := range nonces {
		require.False(t, seen[n], "duplicate nonce %s", n)
		seen[n] = true
	}
	require.Len(t, seen, workers*perWorker)
}
