package rest

import (
	"context"
	"errors"
	"sync"
)

type MockRequester struct {
	RequestFunc func(ctx context.Context, req Request) (*Response, error)

	mu       sync.Mutex
	requests []Request
}

func (m *MockRequester) Request(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, req)
	}

	return nil, errors.New("not implemented")
}

// Requests returns the requests received so far.
func (m *MockRequester) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Request(nil), m.requests...)
}
