package discord

import (
	"context"
	"net/http"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/rest"
)

// InteractionResponse is a message sent in answer to an interaction. It is
// edited and deleted through the interaction webhook.
type InteractionResponse struct {
	*Message

	InteractionID string
	ApplicationID string
	Token         string
}

func (r *InteractionResponse) Edit(ctx context.Context, in payload.Input) (*InteractionResponse, error) {
	p := payload.EditMessage(in)
	raw, err := rest.Call[APIMessage](ctx, r.client.rest, rest.Request{
		Method:   http.MethodPatch,
		Endpoint: rest.WebhookMessage(r.ApplicationID, r.Token, r.ID),
		Body:     p,
		Files:    p.Files(),
	})
	if err != nil {
		return nil, err
	}

	if raw.GuildID == "" {
		raw.GuildID = r.GuildID
	}

	return &InteractionResponse{
		Message:       newMessage(ctx, r.client, raw),
		InteractionID: r.InteractionID,
		ApplicationID: r.ApplicationID,
		Token:         r.Token,
	}, nil
}

func (r *InteractionResponse) Delete(ctx context.Context) error {
	_, err := r.client.rest.Request(ctx, rest.Request{
		Method:   http.MethodDelete,
		Endpoint: rest.WebhookMessage(r.ApplicationID, r.Token, r.ID),
	})
	return err
}
