package discord

import (
	"context"
	"net/http"
	"time"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/rest"
)

type Message struct {
	client *Client

	ID              string
	ChannelID       string
	GuildID         string
	Author          *User
	Content         string
	Timestamp       time.Time
	EditedTimestamp *time.Time
	TTS             bool
	MentionEveryone bool
	Embeds          []payload.Embed
	Components      []payload.Component
	Attachments     []APIAttachment
	Flags           int
	WebhookID       string
	Reference       *payload.MessageReference
}

func newMessage(ctx context.Context, c *Client, raw APIMessage) *Message {
	m := &Message{
		client:          c,
		ID:              raw.ID,
		ChannelID:       raw.ChannelID,
		GuildID:         raw.GuildID,
		Content:         raw.Content,
		Timestamp:       raw.Timestamp,
		EditedTimestamp: raw.EditedTimestamp,
		TTS:             raw.TTS,
		MentionEveryone: raw.MentionEveryone,
		Embeds:          raw.Embeds,
		Components:      raw.Components,
		Attachments:     raw.Attachments,
		Flags:           raw.Flags,
		WebhookID:       raw.WebhookID,
		Reference:       raw.MessageReference,
	}

	if raw.Author != nil {
		m.Author = c.upsertUser(ctx, *raw.Author)
	}

	return m
}

func (m *Message) Channel() (Channel, bool) {
	return m.client.Channels.Get(m.ChannelID)
}

// Reply sends a message referencing m to its channel.
func (m *Message) Reply(ctx context.Context, in payload.Input) (*Message, error) {
	o := payload.ToOptions(in)
	if o.Reply == nil {
		o.Reply = &payload.Reply{ID: m.ID}
	}

	ch, ok := m.Channel()
	if !ok {
		ch = newChannel(m.client, APIChannel{ID: m.ChannelID, GuildID: m.GuildID})
	}

	return ch.Base().send(ctx, o)
}

// Edit changes the message and returns the new version.
func (m *Message) Edit(ctx context.Context, in payload.Input) (*Message, error) {
	p := payload.EditMessage(in)
	raw, err := rest.Call[APIMessage](ctx, m.client.rest, rest.Request{
		Method:        http.MethodPatch,
		Endpoint:      rest.ChannelMessage(m.ChannelID, m.ID),
		Authenticated: true,
		Body:          p,
		Files:         p.Files(),
	})
	if err != nil {
		return nil, err
	}

	return newMessage(ctx, m.client, raw), nil
}

func (m *Message) Delete(ctx context.Context, reason string) error {
	_, err := m.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodDelete,
		Endpoint:      rest.ChannelMessage(m.ChannelID, m.ID),
		Authenticated: true,
		Reason:        reason,
	})
	return err
}
