package rest

import "strings"

// Route replaces the ids and tokens of an endpoint with placeholders, so that
// it can be used as a metric label.
func Route(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	segments := strings.Split(path, "/")
	for i, s := range segments {
		switch {
		case isNumeric(s):
			segments[i] = ":id"
		case i >= 2 && segments[i-1] == ":id" &&
			(segments[i-2] == "interactions" || segments[i-2] == "webhooks"):
			segments[i] = ":token"
		}
	}

	return strings.Join(segments, "/")
}

// majorResource is the top level resource of an endpoint with its id, such as
// channels/123. Rate limits are tracked per major resource.
func majorResource(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	var parts []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}

		parts = append(parts, s)
		if len(parts) == 2 {
			break
		}
	}

	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
