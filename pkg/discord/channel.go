package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/collection"
	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/rest"
)

// Channel is one of TextChannel, VoiceChannel, CategoryChannel, ThreadChannel
// or BaseChannel for the other types.
type Channel interface {
	Base() *BaseChannel
	patch(raw APIChannel)
}

type BaseChannel struct {
	client *Client

	ID       string
	Type     ChannelType
	GuildID  string
	Name     string
	Position int
	ParentID string
}

func (c *BaseChannel) Base() *BaseChannel {
	return c
}

func (c *BaseChannel) patch(raw APIChannel) {
	c.Type = raw.Type
	if raw.GuildID != "" {
		c.GuildID = raw.GuildID
	}

	if raw.Name != "" {
		c.Name = raw.Name
	}

	c.Position = raw.Position
	c.ParentID = ""
	if raw.ParentID != nil {
		c.ParentID = *raw.ParentID
	}
}

func (c *BaseChannel) Mention() string {
	return fmt.Sprintf("<#%s>", c.ID)
}

func (c *BaseChannel) String() string {
	return c.Mention()
}

func (c *BaseChannel) Guild() (*Guild, bool) {
	c.client.mu.RLock()
	guildID := c.GuildID
	c.client.mu.RUnlock()
	return c.client.Guilds.Get(guildID)
}

// Delete deletes the channel and drops it from every cache.
func (c *BaseChannel) Delete(ctx context.Context, reason string) error {
	_, err := c.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodDelete,
		Endpoint:      rest.Channel(c.ID),
		Authenticated: true,
		Reason:        reason,
	})
	if err != nil {
		return err
	}

	if guild, ok := c.Guild(); ok {
		guild.Channels.remove(ctx, c.ID)
		return nil
	}

	c.client.Channels.Delete(c.ID)
	c.client.forget(ctx, common.RedisKeyChannel(c.ID))
	return nil
}

// send posts a message to the channel. A nonce is generated when the input has
// none.
func (c *BaseChannel) send(ctx context.Context, in payload.Input) (*Message, error) {
	o := payload.ToOptions(in)
	if o.Nonce == "" {
		o.Nonce = c.client.nonces.Next()
	}

	p := payload.Message(o)
	raw, err := rest.Call[APIMessage](ctx, c.client.rest, rest.Request{
		Method:        http.MethodPost,
		Endpoint:      rest.ChannelMessages(c.ID),
		Authenticated: true,
		Body:          p,
		Files:         p.Files(),
	})
	if err != nil {
		return nil, err
	}

	return newMessage(ctx, c.client, raw), nil
}

type TextChannel struct {
	BaseChannel

	Topic            string
	NSFW             bool
	LastMessageID    string
	RateLimitPerUser int
}

func (c *TextChannel) patch(raw APIChannel) {
	c.BaseChannel.patch(raw)
	if raw.Topic != nil {
		c.Topic = *raw.Topic
	}

	c.NSFW = raw.NSFW
	if raw.LastMessageID != nil {
		c.LastMessageID = *raw.LastMessageID
	}

	c.RateLimitPerUser = raw.RateLimitPerUser
}

func (c *TextChannel) Send(ctx context.Context, in payload.Input) (*Message, error) {
	return c.send(ctx, in)
}

type VoiceChannel struct {
	BaseChannel

	Bitrate   int
	UserLimit int
	RTCRegion string
}

func (c *VoiceChannel) patch(raw APIChannel) {
	c.BaseChannel.patch(raw)
	c.Bitrate = raw.Bitrate
	c.UserLimit = raw.UserLimit
	if raw.RTCRegion != nil {
		c.RTCRegion = *raw.RTCRegion
	}
}

type CategoryChannel struct {
	BaseChannel
}

// Channels returns the cached channels of the guild whose parent is this
// category.
func (c *CategoryChannel) Channels() *collection.Collection[string, Channel] {
	guild, ok := c.Guild()
	if !ok {
		return collection.New[string, Channel]()
	}

	c.client.mu.RLock()
	defer c.client.mu.RUnlock()
	return guild.Channels.Cache().Filter(func(ch Channel) bool {
		return ch.Base().ParentID == c.ID
	})
}

type ThreadChannel struct {
	BaseChannel

	OwnerID  string
	Archived bool
	Locked   bool
}

func (c *ThreadChannel) patch(raw APIChannel) {
	c.BaseChannel.patch(raw)
	if raw.OwnerID != "" {
		c.OwnerID = raw.OwnerID
	}

	if raw.ThreadMetadata != nil {
		c.Archived = raw.ThreadMetadata.Archived
		c.Locked = raw.ThreadMetadata.Locked
	}
}

func (c *ThreadChannel) Send(ctx context.Context, in payload.Input) (*Message, error) {
	return c.send(ctx, in)
}

type channelKind int

const (
	kindOther channelKind = iota
	kindText
	kindVoice
	kindCategory
	kindThread
)

func kindOf(t ChannelType) channelKind {
	switch t {
	case ChannelGuildText, ChannelGuildAnnouncement:
		return kindText
	case ChannelGuildVoice, ChannelGuildStageVoice:
		return kindVoice
	case ChannelGuildCategory:
		return kindCategory
	case ChannelAnnouncementThread, ChannelPublicThread, ChannelPrivateThread:
		return kindThread
	}

	return kindOther
}

func newChannel(c *Client, raw APIChannel) Channel {
	base := BaseChannel{client: c, ID: raw.ID}

	var ch Channel
	switch kindOf(raw.Type) {
	case kindText:
		ch = &TextChannel{BaseChannel: base}
	case kindVoice:
		ch = &VoiceChannel{BaseChannel: base}
	case kindCategory:
		ch = &CategoryChannel{BaseChannel: base}
	case kindThread:
		ch = &ThreadChannel{BaseChannel: base}
	default:
		ch = &base
	}

	ch.patch(raw)
	return ch
}
