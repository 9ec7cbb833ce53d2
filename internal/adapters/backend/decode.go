package backend

import (
	"bytes"
	"encoding/json"
)

// The decode boundary: untyped Backend JSON is converted exactly once,
// immediately after the network call, into one of the stable shapes the
// handlers return to the UI.

// Listing converts a 2xx response into a flat array. The Backend answers
// listing endpoints either with a paginated envelope ({"data":[...]}) or a
// bare array; both normalize to the same shape. Anything else is a decode
// failure (502).
func Listing(resp *Response) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) == 0 {
		return []json.RawMessage{}, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, newDecode(resp.URL, resp.Body, err)
		}
		return items, nil
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, newDecode(resp.URL, resp.Body, err)
	}
	if envelope.Data == nil {
		envelope.Data = []json.RawMessage{}
	}
	return envelope.Data, nil
}

// Single validates a 2xx response as JSON and passes it through unchanged.
// The UI receives single-resource reads exactly as the Backend shaped them.
func Single(resp *Response) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(trimmed) {
		return nil, newDecode(resp.URL, resp.Body, nil)
	}
	return json.RawMessage(trimmed), nil
}
