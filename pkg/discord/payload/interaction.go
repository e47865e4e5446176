package payload

import "golang.org/x/exp/slices"

// InteractionBody is the data of an immediate interaction response.
type InteractionBody struct {
	Content         string           `json:"content"`
	TTS             bool             `json:"tts,omitempty"`
	Embeds          []Embed          `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	Components      []Component      `json:"components,omitempty"`
	Flags           int              `json:"flags,omitempty"`
	Attachments     []Attachment     `json:"attachments,omitempty"`
}

func Interaction(in Input, opts ...BuildOption) *Payload[InteractionBody] {
	b := newBuilder(opts)
	o := ToOptions(in)

	if o.Reply != nil {
		b.warn("reply", "interaction responses cannot reference a message")
	}

	if len(o.Stickers) > 0 {
		b.warn("stickers", "interaction responses cannot carry stickers")
	}

	attachments, uploads := b.attachments(o.Files)
	body := InteractionBody{
		Content:         o.Content,
		TTS:             o.TTS,
		Embeds:          slices.Clone(o.Embeds),
		AllowedMentions: b.allowedMentions(o),
		Components:      slices.Clone(o.Components),
		Flags:           o.Flags,
		Attachments:     attachments,
	}

	if o.Ephemeral {
		body.Flags |= FlagEphemeral
	}

	return newPayload(b, body, uploads)
}
