package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/questx-lab/discordx/pkg/api"
	"github.com/questx-lab/discordx/pkg/discord/payload"
)

// Requester is the only I/O boundary of the entity layer.
type Requester interface {
	Request(ctx context.Context, req Request) (*Response, error)
}

type Request struct {
	Method        string
	Endpoint      string
	Authenticated bool

	// Body is encoded as JSON, or as the payload_json part of a multipart
	// body when Files is not empty.
	Body   any
	Reason string
	Files  []payload.Upload
	Query  api.Parameter
}

type Response struct {
	Code   int
	Header http.Header
	Raw    []byte
}

// Decode unmarshals the response body into v. An empty body leaves v as is.
func (r *Response) Decode(v any) error {
	if len(r.Raw) == 0 {
		return nil
	}

	return json.Unmarshal(r.Raw, v)
}

// Call sends req and decodes the response body into a T.
func Call[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var result T
	resp, err := r.Request(ctx, req)
	if err != nil {
		return result, err
	}

	if err := resp.Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}
