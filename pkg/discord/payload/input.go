package payload

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Input is either Content or Options.
type Input interface {
	options() Options
}

// Content is the shorthand for Options{Content: string(c)}.
type Content string

func (c Content) options() Options {
	return Options{Content: string(c)}
}

// Options describes a message. Reply, Mentions, Ephemeral and FetchReply are
// directives for the builders and are never sent as they are.
type Options struct {
	Content    string      `json:"content"`
	TTS        bool        `json:"tts"`
	Embeds     []Embed     `json:"embeds"`
	Mentions   *Mentions   `json:"mentions"`
	Components []Component `json:"components"`
	Stickers   []string    `json:"stickers"`
	Flags      int         `json:"flags"`
	Files      []File      `json:"files"`
	Reply      *Reply      `json:"reply"`
	Nonce      string      `json:"nonce"`

	Ephemeral  bool `json:"ephemeral"`
	FetchReply bool `json:"fetch_reply"`
}

func (o Options) options() Options {
	return o
}

type Mentions struct {
	// Parse lists the mention types allowed to notify, matched
	// case-insensitively against users, roles and everyone.
	Parse []string `json:"parse"`
	Users []string `json:"users"`
	Roles []string `json:"roles"`
}

type Reply struct {
	ID      string `json:"id"`
	Mention bool   `json:"mention"`
	Error   bool   `json:"error"`
}

// File is a file to upload. It is accepted only with a name and either a URL
// or binary data.
type File struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Data        []byte `json:"data"`
}

func (f File) valid() bool {
	return f.Name != "" && (f.URL != "" || f.Data != nil)
}

// Upload is a file handed to the transport, in attachment order.
type Upload struct {
	Name string
	URL  string
	Data []byte
}

var optionAliases = map[string]string{
	"sticker_ids":   "stickers",
	"fetchReply":    "fetch_reply",
	"fetchResponse": "fetch_reply",
}

// Decode turns loosely typed input into an Input. It accepts strings,
// Content, Options, *Options and map[string]any.
func Decode(v any) (Input, error) {
	switch t := v.(type) {
	case nil:
		return Options{}, nil
	case string:
		return Content(t), nil
	case Content:
		return t, nil
	case Options:
		return t, nil
	case *Options:
		if t == nil {
			return Options{}, nil
		}
		return *t, nil
	case map[string]any:
		return decodeMap(t)
	}

	return nil, fmt.Errorf("unsupported message input %T", v)
}

func decodeMap(m map[string]any) (Options, error) {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		normalized[k] = v
	}

	for alias, key := range optionAliases {
		if v, ok := normalized[alias]; ok {
			if _, exists := normalized[key]; !exists {
				normalized[key] = v
			}
			delete(normalized, alias)
		}
	}

	var o Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &o,
	})
	if err != nil {
		return Options{}, err
	}

	if err := decoder.Decode(normalized); err != nil {
		return Options{}, fmt.Errorf("cannot decode message options: %w", err)
	}

	return o, nil
}

// ToOptions resolves an Input to its Options. A nil Input is empty Options.
func ToOptions(in Input) Options {
	if in == nil {
		return Options{}
	}

	return in.options()
}
