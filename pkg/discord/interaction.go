package discord

import (
	"context"
	"net/http"
	"sync"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/errorx"
)

type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
	InteractionMessageComponent   InteractionType = 3
	InteractionAutocomplete       InteractionType = 4
	InteractionModalSubmit        InteractionType = 5
)

type CommandType int

const (
	CommandChatInput CommandType = 1
	CommandUser      CommandType = 2
	CommandMessage   CommandType = 3
)

type CallbackType int

const (
	CallbackPong                     CallbackType = 1
	CallbackChannelMessageWithSource CallbackType = 4
	CallbackDeferredChannelMessage   CallbackType = 5
	CallbackDeferredUpdateMessage    CallbackType = 6
	CallbackUpdateMessage            CallbackType = 7
	CallbackModal                    CallbackType = 9
)

type APICommandOption struct {
	Name    string             `json:"name"`
	Type    int                `json:"type"`
	Value   any                `json:"value,omitempty"`
	Options []APICommandOption `json:"options,omitempty"`
	Focused bool               `json:"focused,omitempty"`
}

type APIInteractionData struct {
	ID            string                `json:"id,omitempty"`
	Name          string                `json:"name,omitempty"`
	Type          CommandType           `json:"type,omitempty"`
	Options       []APICommandOption    `json:"options,omitempty"`
	TargetID      string                `json:"target_id,omitempty"`
	CustomID      string                `json:"custom_id,omitempty"`
	ComponentType payload.ComponentType `json:"component_type,omitempty"`
	Values        []string              `json:"values,omitempty"`
	Components    []payload.Component   `json:"components,omitempty"`
}

type APIInteraction struct {
	ID             string               `json:"id"`
	ApplicationID  string               `json:"application_id"`
	Type           InteractionType      `json:"type"`
	Data           *APIInteractionData  `json:"data,omitempty"`
	GuildID        string               `json:"guild_id,omitempty"`
	ChannelID      string               `json:"channel_id,omitempty"`
	Member         *APIMember           `json:"member,omitempty"`
	User           *APIUser             `json:"user,omitempty"`
	Token          string               `json:"token"`
	Version        int                  `json:"version"`
	Message        *APIMessage          `json:"message,omitempty"`
	AppPermissions *permission.Bitfield `json:"app_permissions,omitempty"`
	Locale         string               `json:"locale,omitempty"`
	GuildLocale    string               `json:"guild_locale,omitempty"`
}

var (
	ErrInteractionAlreadyAcknowledged = errorx.New(errorx.InteractionAcknowledged,
		"The interaction has already been acknowledged")
	ErrInteractionNotAcknowledged = errorx.New(errorx.InteractionNotAcknowledged,
		"The interaction has not been acknowledged yet")
)

type interactionState int

const (
	stateReceived interactionState = iota
	stateDeferred
	stateReplied
)

// Interaction is one inbound interaction. Its response window is enforced by
// the service; an expired token surfaces as a transport error.
type Interaction struct {
	client *Client

	ID            string
	ApplicationID string
	Type          InteractionType
	Token         string
	Data          *APIInteractionData
	GuildID       string
	ChannelID     string
	Locale        string

	// Member is set when the interaction comes from a cached guild. User is
	// always set.
	Member  *Member
	User    *User
	Message *Message

	mu        sync.Mutex
	state     interactionState
	ephemeral bool
}

// NewInteraction folds a raw interaction into the caches and wraps it.
func (c *Client) NewInteraction(ctx context.Context, raw APIInteraction) *Interaction {
	i := &Interaction{
		client:        c,
		ID:            raw.ID,
		ApplicationID: raw.ApplicationID,
		Type:          raw.Type,
		Token:         raw.Token,
		Data:          raw.Data,
		GuildID:       raw.GuildID,
		ChannelID:     raw.ChannelID,
		Locale:        raw.Locale,
	}

	if i.ApplicationID == "" {
		c.mu.RLock()
		i.ApplicationID = c.applicationID
		c.mu.RUnlock()
	}

	switch {
	case raw.Member != nil && raw.Member.User != nil:
		if guild, ok := c.Guilds.Get(raw.GuildID); ok {
			i.Member = guild.Members.add(ctx, *raw.Member)
			i.User = i.Member.User
		} else {
			i.User = c.upsertUser(ctx, *raw.Member.User)
		}
	case raw.User != nil:
		i.User = c.upsertUser(ctx, *raw.User)
	}

	if raw.Message != nil {
		i.Message = newMessage(ctx, c, *raw.Message)
	}

	return i
}

func (i *Interaction) Guild() (*Guild, bool) {
	return i.client.Guilds.Get(i.GuildID)
}

func (i *Interaction) Channel() (Channel, bool) {
	return i.client.Channels.Get(i.ChannelID)
}

func (i *Interaction) IsComponent() bool {
	return i.Type == InteractionMessageComponent
}

func (i *Interaction) IsModalSubmit() bool {
	return i.Type == InteractionModalSubmit
}

func (i *Interaction) IsSlash() bool {
	return i.isCommand(CommandChatInput)
}

func (i *Interaction) IsUser() bool {
	return i.isCommand(CommandUser)
}

func (i *Interaction) IsMessage() bool {
	return i.isCommand(CommandMessage)
}

func (i *Interaction) isCommand(t CommandType) bool {
	return i.Type == InteractionApplicationCommand && i.Data != nil && i.Data.Type == t
}

func (i *Interaction) CommandName() string {
	if i.Data == nil {
		return ""
	}

	return i.Data.Name
}

func (i *Interaction) CustomID() string {
	if i.Data == nil {
		return ""
	}

	return i.Data.CustomID
}

// Inputs maps the custom id of every text input of a submitted modal to its
// value.
func (i *Interaction) Inputs() map[string]string {
	inputs := map[string]string{}
	if i.Data == nil {
		return inputs
	}

	var walk func(components []payload.Component)
	walk = func(components []payload.Component) {
		for _, c := range components {
			if c.Type == payload.ComponentTextInput {
				inputs[c.CustomID] = c.Value
			}
			walk(c.Components)
		}
	}
	walk(i.Data.Components)

	return inputs
}

// Acknowledged reports whether the interaction was replied to or deferred.
func (i *Interaction) Acknowledged() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.state != stateReceived
}

type interactionCallback struct {
	Type CallbackType `json:"type"`
	Data any          `json:"data,omitempty"`
}

type deferredData struct {
	Flags int `json:"flags"`
}

// Reply sends the initial response. When Options.FetchReply is set the
// response is fetched and returned, otherwise the returned response is nil.
func (i *Interaction) Reply(ctx context.Context, in payload.Input) (*InteractionResponse, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != stateReceived {
		return nil, ErrInteractionAlreadyAcknowledged
	}

	o := payload.ToOptions(in)
	p := payload.Interaction(o)
	if err := i.callback(ctx, CallbackChannelMessageWithSource, p, p.Files()); err != nil {
		return nil, err
	}

	i.state = stateReplied
	i.ephemeral = o.Ephemeral
	if !o.FetchReply {
		return nil, nil
	}

	return i.fetchReply(ctx)
}

// DeferReply acknowledges the interaction and lets the response come later
// through EditReply.
func (i *Interaction) DeferReply(ctx context.Context, ephemeral bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != stateReceived {
		return ErrInteractionAlreadyAcknowledged
	}

	flags := 0
	if ephemeral {
		flags = payload.FlagEphemeral
	}

	if err := i.callback(ctx, CallbackDeferredChannelMessage, deferredData{Flags: flags}, nil); err != nil {
		return err
	}

	i.state = stateDeferred
	i.ephemeral = ephemeral
	return nil
}

// Modal answers with a modal. Modals have no original response to fetch.
func (i *Interaction) Modal(ctx context.Context, opts payload.ModalOptions) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != stateReceived {
		return ErrInteractionAlreadyAcknowledged
	}

	if err := i.callback(ctx, CallbackModal, payload.Modal(opts), nil); err != nil {
		return err
	}

	i.state = stateReplied
	return nil
}

// EditReply edits the original response.
func (i *Interaction) EditReply(ctx context.Context, in payload.Input) (*InteractionResponse, error) {
	if !i.Acknowledged() {
		return nil, ErrInteractionNotAcknowledged
	}

	p := payload.EditMessage(in)
	raw, err := rest.Call[APIMessage](ctx, i.client.rest, rest.Request{
		Method:   http.MethodPatch,
		Endpoint: rest.WebhookMessage(i.ApplicationID, i.Token, "@original"),
		Body:     p,
		Files:    p.Files(),
	})
	if err != nil {
		return nil, err
	}

	return i.wrap(ctx, raw), nil
}

// FollowUp sends another message after the initial response.
func (i *Interaction) FollowUp(ctx context.Context, in payload.Input) (*InteractionResponse, error) {
	if !i.Acknowledged() {
		return nil, ErrInteractionNotAcknowledged
	}

	o := payload.ToOptions(in)
	p := payload.Message(o)
	body := p.Body()
	if o.Ephemeral {
		body.Flags |= payload.FlagEphemeral
	}

	raw, err := rest.Call[APIMessage](ctx, i.client.rest, rest.Request{
		Method:   http.MethodPost,
		Endpoint: rest.Webhook(i.ApplicationID, i.Token),
		Body:     body,
		Files:    p.Files(),
	})
	if err != nil {
		return nil, err
	}

	return i.wrap(ctx, raw), nil
}

// FetchReply fetches the original response.
func (i *Interaction) FetchReply(ctx context.Context) (*InteractionResponse, error) {
	if !i.Acknowledged() {
		return nil, ErrInteractionNotAcknowledged
	}

	return i.fetchReply(ctx)
}

// DeleteReply deletes the original response.
func (i *Interaction) DeleteReply(ctx context.Context) error {
	if !i.Acknowledged() {
		return ErrInteractionNotAcknowledged
	}

	_, err := i.client.rest.Request(ctx, rest.Request{
		Method:   http.MethodDelete,
		Endpoint: rest.WebhookMessage(i.ApplicationID, i.Token, "@original"),
	})
	return err
}

func (i *Interaction) fetchReply(ctx context.Context) (*InteractionResponse, error) {
	raw, err := rest.Call[APIMessage](ctx, i.client.rest, rest.Request{
		Method:   http.MethodGet,
		Endpoint: rest.WebhookMessage(i.ApplicationID, i.Token, "@original"),
	})
	if err != nil {
		return nil, err
	}

	return i.wrap(ctx, raw), nil
}

func (i *Interaction) callback(ctx context.Context, t CallbackType, data any, files []payload.Upload) error {
	_, err := i.client.rest.Request(ctx, rest.Request{
		Method:   http.MethodPost,
		Endpoint: rest.InteractionCallback(i.ID, i.Token),
		Body:     interactionCallback{Type: t, Data: data},
		Files:    files,
	})
	return err
}

func (i *Interaction) wrap(ctx context.Context, raw APIMessage) *InteractionResponse {
	if raw.GuildID == "" {
		raw.GuildID = i.GuildID
	}

	return &InteractionResponse{
		Message:       newMessage(ctx, i.client, raw),
		InteractionID: i.ID,
		ApplicationID: i.ApplicationID,
		Token:         i.Token,
	}
}

// Ephemeral reports whether the initial response is only visible to the
// invoking user.
func (i *Interaction) Ephemeral() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.ephemeral
}
