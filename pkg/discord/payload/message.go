package payload

import "golang.org/x/exp/slices"

// MessageBody is the body of a channel message or a follow-up message.
type MessageBody struct {
	Content          string            `json:"content"`
	TTS              bool              `json:"tts"`
	Embeds           []Embed           `json:"embeds"`
	AllowedMentions  *AllowedMentions  `json:"allowed_mentions"`
	MessageReference *MessageReference `json:"message_reference"`
	Components       []Component       `json:"components"`
	StickerIDs       []string          `json:"sticker_ids"`
	Flags            int               `json:"flags,omitempty"`
	Nonce            string            `json:"nonce,omitempty"`
	Attachments      []Attachment      `json:"attachments"`
}

func Message(in Input, opts ...BuildOption) *Payload[MessageBody] {
	b := newBuilder(opts)
	o := ToOptions(in)

	attachments, uploads := b.attachments(o.Files)
	body := MessageBody{
		Content:          o.Content,
		TTS:              o.TTS,
		Embeds:           slices.Clone(o.Embeds),
		AllowedMentions:  b.allowedMentions(o),
		MessageReference: messageReference(o.Reply),
		Components:       slices.Clone(o.Components),
		StickerIDs:       slices.Clone(o.Stickers),
		Flags:            o.Flags,
		Nonce:            o.Nonce,
		Attachments:      attachments,
	}

	return newPayload(b, body, uploads)
}
