package discord

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/idutil"
)

const cdnURL = "https://cdn.discordapp.com"

type User struct {
	mu *sync.RWMutex

	ID            string
	Username      string
	GlobalName    string
	Discriminator string
	Avatar        string
	Bot           bool
}

// newUser builds a user whose fields are guarded by mu.
func newUser(mu *sync.RWMutex, raw APIUser) *User {
	u := &User{mu: mu, ID: raw.ID}
	u.patch(raw)
	return u
}

func (u *User) patch(raw APIUser) {
	if raw.Username != "" {
		u.Username = raw.Username
	}

	if raw.GlobalName != nil {
		u.GlobalName = *raw.GlobalName
	}

	if raw.Discriminator != "" {
		u.Discriminator = raw.Discriminator
	}

	if raw.Avatar != nil {
		u.Avatar = *raw.Avatar
	}

	u.Bot = raw.Bot
}

func (u *User) Mention() string {
	return fmt.Sprintf("<@%s>", u.ID)
}

func (u *User) String() string {
	return u.Mention()
}

// DisplayName is the global name of the user, or its username.
func (u *User) DisplayName() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.displayName()
}

func (u *User) displayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

func (u *User) CreatedAt() (time.Time, error) {
	return idutil.CreatedAt(u.ID)
}

// AvatarURL returns an empty string when the user has no custom avatar.
func (u *User) AvatarURL() string {
	u.mu.RLock()
	avatar := u.Avatar
	u.mu.RUnlock()
	if avatar == "" {
		return ""
	}

	return fmt.Sprintf("%s/avatars/%s/%s.png", cdnURL, u.ID, avatar)
}

// ClientUser is the authenticated user.
type ClientUser struct {
	*User

	client *Client
}

type ClientUserEditOptions struct {
	Username *string `json:"username,omitempty"`

	// Avatar is a data URI such as "data:image/png;base64,...".
	Avatar *string `json:"avatar,omitempty"`
}

// Edit changes the authenticated user. The cached user is patched in place.
func (u *ClientUser) Edit(ctx context.Context, opts ClientUserEditOptions) (*ClientUser, error) {
	raw, err := rest.Call[APIUser](ctx, u.client.rest, rest.Request{
		Method:        http.MethodPatch,
		Endpoint:      rest.CurrentUser(),
		Authenticated: true,
		Body:          opts,
	})
	if err != nil {
		return nil, err
	}

	u.client.upsertUser(ctx, raw)
	return u, nil
}

func (u *ClientUser) EditUsername(ctx context.Context, username string) (*ClientUser, error) {
	return u.Edit(ctx, ClientUserEditOptions{Username: &username})
}

func (u *ClientUser) EditAvatar(ctx context.Context, avatar string) (*ClientUser, error) {
	return u.Edit(ctx, ClientUserEditOptions{Avatar: &avatar})
}
