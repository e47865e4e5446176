package payload

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type TextInput struct {
	CustomID    string
	Label       string
	Style       int
	Placeholder string
	Value       string
	Required    *bool
	MinLength   *int
	MaxLength   *int
}

type ModalOptions struct {
	CustomID   string
	Title      string
	Components []Component

	// Inputs are appended after Components, one action row each.
	Inputs []TextInput
}

type ModalBody struct {
	CustomID   string      `json:"custom_id"`
	Title      string      `json:"title"`
	Components []Component `json:"components"`
}

func Modal(o ModalOptions, opts ...BuildOption) *Payload[ModalBody] {
	b := newBuilder(opts)

	components := slices.Clone(o.Components)
	for i, input := range o.Inputs {
		if input.CustomID == "" {
			b.warn(fmt.Sprintf("inputs[%d]", i), "text input needs a custom id")
			continue
		}

		style := input.Style
		if style == 0 {
			style = TextInputShort
		}

		components = append(components, Component{
			Type: ComponentActionRow,
			Components: []Component{{
				Type:        ComponentTextInput,
				CustomID:    input.CustomID,
				Label:       input.Label,
				Style:       style,
				Placeholder: input.Placeholder,
				Value:       input.Value,
				Required:    input.Required,
				MinLength:   input.MinLength,
				MaxLength:   input.MaxLength,
			}},
		})
	}

	if components == nil {
		components = []Component{}
	}

	return newPayload(b, ModalBody{CustomID: o.CustomID, Title: o.Title, Components: components}, nil)
}
