// Package payload turns call-site input into request bodies. Every builder is
// a pure function: the same input always yields the same body.
package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Payload is the output of a builder: a request body and the files to upload
// alongside it. Callers must treat the body as read-only.
type Payload[T any] struct {
	body     T
	files    []Upload
	reason   string
	warnings []Warning
}

func (p *Payload[T]) Body() T {
	return p.body
}

func (p *Payload[T]) Files() []Upload {
	return slices.Clone(p.files)
}

// Reason is the audit log reason split off the body, if any.
func (p *Payload[T]) Reason() string {
	return p.reason
}

// Warnings lists the input that was skipped. It is only filled in strict mode.
func (p *Payload[T]) Warnings() []Warning {
	return slices.Clone(p.warnings)
}

func (p *Payload[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.body)
}

type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Reason
}

type BuildOption func(*builder)

// Strict makes the builder report every input it skips.
func Strict() BuildOption {
	return func(b *builder) {
		b.strict = true
	}
}

type builder struct {
	strict   bool
	warnings []Warning
}

func newBuilder(opts []BuildOption) *builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *builder) warn(field, format string, a ...any) {
	if b.strict {
		b.warnings = append(b.warnings, Warning{Field: field, Reason: fmt.Sprintf(format, a...)})
	}
}

// allowedMentions merges the reply directive and the mention settings into a
// single object. It returns nil when neither is present.
func (b *builder) allowedMentions(o Options) *AllowedMentions {
	if o.Mentions == nil && (o.Reply == nil || !o.Reply.Mention) {
		return nil
	}

	am := &AllowedMentions{}
	if o.Reply != nil && o.Reply.Mention {
		am.RepliedUser = true
	}

	if o.Mentions == nil {
		return am
	}

	if o.Mentions.Parse != nil {
		requested := map[MentionType]bool{}
		for _, token := range o.Mentions.Parse {
			t := MentionType(strings.ToLower(token))
			if !slices.Contains(mentionOrder, t) {
				b.warn("mentions.parse", "unknown mention type %q", token)
				continue
			}
			requested[t] = true
		}

		am.Parse = []MentionType{}
		for _, t := range mentionOrder {
			if requested[t] {
				am.Parse = append(am.Parse, t)
			}
		}
	}

	if len(o.Mentions.Users) > 0 {
		am.Users = slices.Clone(o.Mentions.Users)
	}

	if len(o.Mentions.Roles) > 0 {
		am.Roles = slices.Clone(o.Mentions.Roles)
	}

	return am
}

// attachments indexes the accepted files. Ids follow the position among
// accepted files only.
func (b *builder) attachments(files []File) ([]Attachment, []Upload) {
	var attachments []Attachment
	var uploads []Upload
	for i, f := range files {
		if !f.valid() {
			b.warn(fmt.Sprintf("files[%d]", i), "file needs a name and a url or data")
			continue
		}

		attachments = append(attachments, Attachment{
			ID:          len(uploads),
			Filename:    f.Name,
			Description: f.Description,
		})
		uploads = append(uploads, Upload{Name: f.Name, URL: f.URL, Data: f.Data})
	}

	if len(attachments) != len(uploads) {
		attachments = nil
	}

	return attachments, uploads
}

func messageReference(r *Reply) *MessageReference {
	if r == nil {
		return nil
	}

	return &MessageReference{MessageID: r.ID, FailIfNotExists: r.Error}
}

func newPayload[T any](b *builder, body T, files []Upload) *Payload[T] {
	return &Payload[T]{body: body, files: files, warnings: b.warnings}
}
