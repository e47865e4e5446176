package payload

import (
	"encoding/json"
	"time"
)

const (
	FlagSuppressEmbeds        = 1 << 2
	FlagEphemeral             = 1 << 6
	FlagSuppressNotifications = 1 << 12
)

type MentionType string

const (
	MentionUsers    MentionType = "users"
	MentionRoles    MentionType = "roles"
	MentionEveryone MentionType = "everyone"
)

// mentionOrder is the order of the parse list sent to the service.
var mentionOrder = []MentionType{MentionUsers, MentionRoles, MentionEveryone}

type ComponentType int

const (
	ComponentActionRow    ComponentType = 1
	ComponentButton       ComponentType = 2
	ComponentStringSelect ComponentType = 3
	ComponentTextInput    ComponentType = 4
	ComponentUserSelect   ComponentType = 5
	ComponentRoleSelect   ComponentType = 6
	ComponentMentionable  ComponentType = 7
	ComponentChannel      ComponentType = 8
)

const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
	ButtonSuccess   = 3
	ButtonDanger    = 4
	ButtonLink      = 5

	TextInputShort     = 1
	TextInputParagraph = 2
)

type AllowedMentions struct {
	Parse       []MentionType `json:"parse,omitempty"`
	Users       []string      `json:"users,omitempty"`
	Roles       []string      `json:"roles,omitempty"`
	RepliedUser bool          `json:"replied_user,omitempty"`
}

// MarshalJSON keeps an explicit empty parse list, which disables every mention
// type, and omits an absent one.
func (a AllowedMentions) MarshalJSON() ([]byte, error) {
	type alias AllowedMentions
	out := struct {
		Parse *[]MentionType `json:"parse,omitempty"`
		alias
	}{alias: alias(a)}

	if a.Parse != nil {
		parse := a.Parse
		out.Parse = &parse
	}

	return json.Marshal(out)
}

type MessageReference struct {
	MessageID       string `json:"message_id"`
	FailIfNotExists bool   `json:"fail_if_not_exists,omitempty"`
}

type Attachment struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       int          `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedMedia struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Emoji struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

type Component struct {
	Type        ComponentType  `json:"type"`
	CustomID    string         `json:"custom_id,omitempty"`
	Style       int            `json:"style,omitempty"`
	Label       string         `json:"label,omitempty"`
	Emoji       *Emoji         `json:"emoji,omitempty"`
	URL         string         `json:"url,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	MinValues   *int           `json:"min_values,omitempty"`
	MaxValues   *int           `json:"max_values,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	MinLength   *int           `json:"min_length,omitempty"`
	MaxLength   *int           `json:"max_length,omitempty"`
	Required    *bool          `json:"required,omitempty"`
	Value       string         `json:"value,omitempty"`
	Components  []Component    `json:"components,omitempty"`
}

type SelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Emoji       *Emoji `json:"emoji,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// NullableTime encodes as null when Valid is false.
type NullableTime struct {
	Time  time.Time
	Valid bool
}

func (t NullableTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// Ptr returns a pointer to v, for the optional fields of option structs.
func Ptr[T any](v T) *T {
	return &v
}
