package payload

import "golang.org/x/exp/slices"

// EditMessageBody only carries the fields the caller set. Content is sent when
// non-empty, embeds and components when non-nil (an empty slice clears them).
type EditMessageBody struct {
	Content         *string          `json:"content,omitempty"`
	Embeds          *[]Embed         `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	Components      *[]Component     `json:"components,omitempty"`
	Flags           int              `json:"flags,omitempty"`
	Attachments     []Attachment     `json:"attachments,omitempty"`
}

func EditMessage(in Input, opts ...BuildOption) *Payload[EditMessageBody] {
	b := newBuilder(opts)
	o := ToOptions(in)

	if o.Reply != nil {
		b.warn("reply", "an edit cannot change the referenced message")
	}

	attachments, uploads := b.attachments(o.Files)
	body := EditMessageBody{
		AllowedMentions: b.allowedMentions(o),
		Flags:           o.Flags,
		Attachments:     attachments,
	}

	if o.Content != "" {
		content := o.Content
		body.Content = &content
	}

	if o.Embeds != nil {
		embeds := slices.Clone(o.Embeds)
		body.Embeds = &embeds
	}

	if o.Components != nil {
		components := slices.Clone(o.Components)
		body.Components = &components
	}

	return newPayload(b, body, uploads)
}
