// Package discord keeps a local mirror of guilds, channels, roles, members
// and users, and sends requests shaped the way the service expects them.
package discord

import (
	"context"
	"net/http"
	"sync"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/collection"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/idutil"
	"github.com/questx-lab/discordx/pkg/logger"
	"github.com/questx-lab/discordx/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// Client owns the client-wide caches. Entities reach them through the client
// they were built with.
type Client struct {
	// mu guards the fields of every cached entity, which are patched while
	// the managers populate in the background.
	mu sync.RWMutex

	rest          rest.Requester
	logger        logger.Logger
	mirror        Mirror
	nonces        *idutil.NonceGenerator
	applicationID string

	// User is the authenticated user, set by Login.
	User *ClientUser

	Users    *collection.Collection[string, *User]
	Channels *collection.Collection[string, Channel]
	Guilds   *collection.Collection[string, *Guild]
}

type ClientOption func(*Client)

func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMirror writes every cached entity through to m.
func WithMirror(m Mirror) ClientOption {
	return func(c *Client) {
		c.mirror = m
	}
}

func WithApplicationID(id string) ClientOption {
	return func(c *Client) {
		c.applicationID = id
	}
}

// NewClient builds a client on top of requester. The logger, the application
// id and the nonce node default to the values carried by ctx.
func NewClient(ctx context.Context, requester rest.Requester, opts ...ClientOption) (*Client, error) {
	cfg := xcontext.Configs(ctx)
	nonces, err := idutil.NewNonceGenerator(cfg.Discord.NonceNode)
	if err != nil {
		return nil, err
	}

	c := &Client{
		rest:          requester,
		logger:        xcontext.Logger(ctx),
		nonces:        nonces,
		applicationID: cfg.Discord.BotID,
		Users:         collection.New[string, *User](),
		Channels:      collection.New[string, Channel](),
		Guilds:        collection.New[string, *Guild](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Login fetches the authenticated user.
func (c *Client) Login(ctx context.Context) (*ClientUser, error) {
	raw, err := rest.Call[APIUser](ctx, c.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.CurrentUser(),
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	user := c.upsertUser(ctx, raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.User == nil || c.User.User != user {
		c.User = &ClientUser{User: user, client: c}
	}

	if c.applicationID == "" {
		c.applicationID = raw.ID
	}

	return c.User, nil
}

// RLock locks the cached entities for reading. Fields of guilds, roles,
// channels, members and users are patched while their managers populate, so
// hold the read lock while reading them directly. Do not call methods of the
// client or of its entities before RUnlock.
func (c *Client) RLock() {
	c.mu.RLock()
}

func (c *Client) RUnlock() {
	c.mu.RUnlock()
}

// selfID is the id of the authenticated user.
func (c *Client) selfID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.User != nil {
		return c.User.ID
	}

	return c.applicationID
}

// FetchGuild fetches a guild and adds it to the cache.
func (c *Client) FetchGuild(ctx context.Context, id string) (*Guild, error) {
	raw, err := rest.Call[APIGuild](ctx, c.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.Guild(id),
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	return c.AddGuild(ctx, raw), nil
}

// FetchGuilds fetches every guild the authenticated user is in.
func (c *Client) FetchGuilds(ctx context.Context) ([]*Guild, error) {
	partials, err := rest.Call[[]APIGuild](ctx, c.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.CurrentUserGuilds(),
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	guilds := make([]*Guild, len(partials))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, partial := range partials {
		i, id := i, partial.ID
		g.Go(func() error {
			guild, err := c.FetchGuild(gctx, id)
			if err != nil {
				return err
			}

			guilds[i] = guild
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return guilds, nil
}

// AddGuild folds raw into the guild cache. A new guild starts populating its
// managers in the background.
func (c *Client) AddGuild(ctx context.Context, raw APIGuild) *Guild {
	if guild, ok := c.Guilds.Get(raw.ID); ok {
		c.mu.Lock()
		guild.patch(raw)
		c.mu.Unlock()
		for _, role := range raw.Roles {
			guild.Roles.add(ctx, role)
		}
		return guild
	}

	guild := newGuild(ctx, c, raw)
	c.Guilds.Set(raw.ID, guild)
	return guild
}

// upsertUser returns the cached user patched with raw, so that every holder
// shares the same instance.
func (c *Client) upsertUser(ctx context.Context, raw APIUser) *User {
	c.mu.Lock()
	user := c.patchUser(raw)
	c.mu.Unlock()

	c.store(ctx, common.RedisKeyUser(raw.ID), raw)
	return user
}

// patchUser is upsertUser without the mirror. c.mu must be held.
func (c *Client) patchUser(raw APIUser) *User {
	user, ok := c.Users.Get(raw.ID)
	if ok {
		user.patch(raw)
	} else {
		user = newUser(&c.mu, raw)
		c.Users.Set(raw.ID, user)
	}

	return user
}

// upsertChannel returns the cached channel patched with raw when it has the
// same kind, or a new channel otherwise. It does not write any cache.
func (c *Client) upsertChannel(raw APIChannel) Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.Channels.Get(raw.ID); ok && kindOf(existing.Base().Type) == kindOf(raw.Type) {
		existing.patch(raw)
		return existing
	}

	return newChannel(c, raw)
}

func (c *Client) store(ctx context.Context, key string, v any) {
	if c.mirror == nil {
		return
	}

	if err := c.mirror.Store(ctx, key, v); err != nil {
		c.logger.Warnf("Cannot mirror %s: %v", key, err)
	}
}

func (c *Client) forget(ctx context.Context, key string) {
	if c.mirror == nil {
		return
	}

	if err := c.mirror.Forget(ctx, key); err != nil {
		c.logger.Warnf("Cannot forget %s: %v", key, err)
	}
}
