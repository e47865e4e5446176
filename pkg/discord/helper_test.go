package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID = "100000000000000010"
	testBotID   = "100000000000000001"
	testOwnerID = "100000000000000002"
)

type handlerFunc func(req rest.Request) (*rest.Response, error)

// fakeAPI answers requests by method and endpoint. Unknown routes answer 404.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]handlerFunc
}

func (f *fakeAPI) handle(method, endpoint string, fn handlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.routes == nil {
		f.routes = map[string]handlerFunc{}
	}
	f.routes[method+" "+endpoint] = fn
}

func (f *fakeAPI) reply(method, endpoint string, v any) {
	f.handle(method, endpoint, func(rest.Request) (*rest.Response, error) {
		return jsonResponse(v)
	})
}

func (f *fakeAPI) fail(method, endpoint string, err error) {
	f.handle(method, endpoint, func(rest.Request) (*rest.Response, error) {
		return nil, err
	})
}

func (f *fakeAPI) serve(ctx context.Context, req rest.Request) (*rest.Response, error) {
	f.mu.Lock()
	fn, ok := f.routes[req.Method+" "+req.Endpoint]
	f.mu.Unlock()

	if !ok {
		return nil, &rest.APIError{Status: http.StatusNotFound, Method: req.Method, Endpoint: req.Endpoint}
	}

	return fn(req)
}

func jsonResponse(v any) (*rest.Response, error) {
	if v == nil {
		return &rest.Response{Code: http.StatusNoContent}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &rest.Response{Code: http.StatusOK, Raw: data}, nil
}

func newTestClient(t *testing.T, opts ...ClientOption) (*Client, *fakeAPI, *rest.MockRequester) {
	api := &fakeAPI{}
	requester := &rest.MockRequester{RequestFunc: api.serve}

	c, err := NewClient(testutil.MockContext(), requester, opts...)
	require.NoError(t, err)
	return c, api, requester
}

// requestsTo returns the requests sent to method and endpoint.
func requestsTo(m *rest.MockRequester, method, endpoint string) []rest.Request {
	var result []rest.Request
	for _, req := range m.Requests() {
		if req.Method == method && req.Endpoint == endpoint {
			result = append(result, req)
		}
	}

	return result
}

func lastRequestTo(t *testing.T, m *rest.MockRequester, method, endpoint string) rest.Request {
	reqs := requestsTo(m, method, endpoint)
	require.NotEmpty(t, reqs, "no request to %s %s", method, endpoint)
	return reqs[len(reqs)-1]
}

func requireBody(t *testing.T, want string, req rest.Request) {
	data, err := json.Marshal(req.Body)
	require.NoError(t, err)
	require.JSONEq(t, want, string(data))
}

func waitPopulated(t *testing.T, g *Guild) {
	for _, ch := range []<-chan struct{}{g.Roles.Populated(), g.Channels.Populated(), g.Members.Populated()} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			require.FailNow(t, "population did not finish")
		}
	}
}

// newTestGuild adds a guild whose populations have finished.
func newTestGuild(t *testing.T, c *Client) *Guild {
	g := c.AddGuild(testutil.MockContext(), APIGuild{ID: testGuildID, Name: "test", OwnerID: testOwnerID})
	waitPopulated(t, g)
	return g
}

func strPtr(s string) *string {
	return &s
}
