package clash

import (
	"fmt"
	"strings"
)

// Category classifies a Message.
type Category int

const (
	CategoryUnspecified Category = iota
	CategoryDiagnostic
	CategoryInformation
	CategoryProblem
	CategoryFailure
)

var categoryNames = wireNames{"unspecified", "diagnostic", "information", "problem", "failure"}

func (c Category) String() string { return categoryNames.name("Category", int(c)) }

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	i, err := categoryNames.parse("message category", string(b))
	if err != nil {
		return err
	}
	*c = Category(i)
	return nil
}

// Message codes attached by Load.
const (
	CodeParseFailure        = "parse_failure"
	CodeNoContent           = "no_content"
	CodeErrorUnreadable     = "error_unreadable"
	CodeUnknownStatus       = "unknown_status"
	CodeResponseUnavailable = "response_unavailable"
	CodeRequestSummary      = "request_summary"
)

// Message is a single note about how a call went.
type Message struct {
	Text     string   `json:"text"`
	Code     string   `json:"code,omitempty"`
	Category Category `json:"category"`
}

// StatusNotSet is the HTTPStatusCode of a response that never reached the server.
const StatusNotSet = -1

// Response is the uniform envelope returned by Load. Transport, HTTP and decoding
// problems are reported in Messages rather than as errors.
type Response[T any] struct {
	Data           T         `json:"data"`
	HTTPStatusCode int       `json:"httpStatusCode"`
	Successful     bool      `json:"successful"`
	Messages       []Message `json:"messages"`
}

// NewResponse returns an unsuccessful response with no status.
func NewResponse[T any]() *Response[T] {
	return &Response[T]{HTTPStatusCode: StatusNotSet}
}

func (r *Response[T]) addMessage(c Category, code, format string, args ...any) {
	r.Messages = append(r.Messages, Message{
		Text:     fmt.Sprintf(format, args...),
		Code:     code,
		Category: c,
	})
}

// HasCategory reports whether any message has category c.
func (r *Response[T]) HasCategory(c Category) bool {
	for _, m := range r.Messages {
		if m.Category == c {
			return true
		}
	}
	return false
}

// Failures returns the text of every Failure message, joined by "; ".
func (r *Response[T]) Failures() string {
	var out []string
	for _, m := range r.Messages {
		if m.Category == CategoryFailure {
			out = append(out, m.Text)
		}
	}
	return strings.Join(out, "; ")
}

// Status returns the upstream HTTP status, or StatusNotSet.
func (r *Response[T]) Status() int {
	return r.HTTPStatusCode
}
