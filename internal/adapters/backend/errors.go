package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/html"
)

// maxMessageLen bounds scraped error messages so an HTML error page never
// floods the client.
const maxMessageLen = 300

// failureKind classifies where a Backend call failed.
type failureKind int

const (
	// kindUpstream: the Backend answered with a non-2xx status.
	kindUpstream failureKind = iota
	// kindUnreachable: network/DNS/timeout before any response.
	kindUnreachable
	// kindDecode: the Backend answered 2xx but the body was unusable.
	kindDecode
)

// Error is a classified Backend failure. Status is the code to surface to
// the caller; unreachable and decode failures always carry 502.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field validation errors the Backend reported.
	Fields map[string][]string
	// Snippet is a bounded excerpt of the raw body, kept for diagnostics.
	Snippet string
	// URL is the resolved Backend URL the failed call was issued against.
	URL string

	kind failureKind
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("backend: %s: %v", e.Message, e.err)
	}
	return "backend: " + e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Unreachable reports whether the failure happened before any Backend response.
func (e *Error) Unreachable() bool { return e.kind == kindUnreachable }

// DecodeFailure reports whether the Backend answered 2xx with an unusable body.
func (e *Error) DecodeFailure() bool { return e.kind == kindDecode }

// newUnreachable wraps a transport-level failure as a fixed 502.
func newUnreachable(url string, err error) *Error {
	return &Error{
		Status:  http.StatusBadGateway,
		Message: "backend service is unreachable",
		URL:     url,
		kind:    kindUnreachable,
		err:     err,
	}
}

// newDecode wraps an unparsable 2xx body as a fixed 502.
func newDecode(url string, body []byte, err error) *Error {
	return &Error{
		Status:  http.StatusBadGateway,
		Message: "backend returned an unreadable response",
		Snippet: truncate(strings.TrimSpace(string(body)), maxMessageLen),
		URL:     url,
		kind:    kindDecode,
		err:     err,
	}
}

// messageExprs are tried in order against a decoded error payload.
// The Backend is inconsistent about which field carries the human message.
var messageExprs = []string{"message", "error", "exception"}

// newUpstream interprets a non-2xx Backend response. The body is read as
// text first and only then probed as JSON; HTML error pages are scraped to
// plain text and truncated.
func newUpstream(url string, status int, body []byte) *Error {
	e := &Error{
		Status: status,
		URL:    url,
		kind:   kindUpstream,
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = extractMessage(payload)
		e.Fields = extractFieldErrors(payload)
	}
	if e.Message == "" {
		e.Message = truncate(stripMarkup(string(body)), maxMessageLen)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// extractMessage probes the payload for the first non-empty message field.
func extractMessage(payload any) string {
	for _, expr := range messageExprs {
		v, err := jmespath.Search(expr, payload)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return truncate(s, maxMessageLen)
		}
	}
	return ""
}

// extractFieldErrors pulls a {field: [messages]} map out of the payload
// when the Backend reported validation errors.
func extractFieldErrors(payload any) map[string][]string {
	v, err := jmespath.Search("errors", payload)
	if err != nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}

	out := make(map[string][]string, len(m))
	for field, raw := range m {
		switch val := raw.(type) {
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					out[field] = append(out[field], s)
				}
			}
		case string:
			out[field] = []string{val}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripMarkup reduces an HTML document to its visible text. Non-HTML input
// passes through unchanged apart from whitespace collapsing.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return collapseWhitespace(s)
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tok.TagName()
			if isInvisibleTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if isInvisibleTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// isInvisibleTag reports tags whose text content is never user-facing.
func isInvisibleTag(name string) bool {
	switch name {
	case "script", "style", "head", "title":
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
