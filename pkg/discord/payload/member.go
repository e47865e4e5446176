package payload

import (
	"time"

	"golang.org/x/exp/slices"
)

// MemberEditOptions lists the member attributes to change. Nil fields are left
// untouched.
type MemberEditOptions struct {
	Nick      *string
	Roles     []string
	Mute      *bool
	Deaf      *bool
	ChannelID *string
	Flags     *int

	Timeout      *time.Time
	ClearTimeout bool

	Reason string
}

type MemberEditBody struct {
	Nick                       *string       `json:"nick,omitempty"`
	Roles                      *[]string     `json:"roles,omitempty"`
	Mute                       *bool         `json:"mute,omitempty"`
	Deaf                       *bool         `json:"deaf,omitempty"`
	ChannelID                  *string       `json:"channel_id,omitempty"`
	CommunicationDisabledUntil *NullableTime `json:"communication_disabled_until,omitempty"`
	Flags                      *int          `json:"flags,omitempty"`
}

func MemberEdit(o MemberEditOptions, opts ...BuildOption) *Payload[MemberEditBody] {
	b := newBuilder(opts)

	body := MemberEditBody{
		Nick:      clonePtr(o.Nick),
		Mute:      clonePtr(o.Mute),
		Deaf:      clonePtr(o.Deaf),
		ChannelID: clonePtr(o.ChannelID),
		Flags:     clonePtr(o.Flags),
	}

	if o.Roles != nil {
		roles := slices.Clone(o.Roles)
		body.Roles = &roles
	}

	switch {
	case o.ClearTimeout:
		if o.Timeout != nil {
			b.warn("timeout", "ignored because the timeout is cleared")
		}
		body.CommunicationDisabledUntil = &NullableTime{}
	case o.Timeout != nil:
		body.CommunicationDisabledUntil = &NullableTime{Time: *o.Timeout, Valid: true}
	}

	p := newPayload(b, body, nil)
	p.reason = o.Reason
	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}
