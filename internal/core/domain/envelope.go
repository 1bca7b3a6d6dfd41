// internal/core/domain/envelope.go
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// UnknownError is surfaced when a failed envelope carries no error text
const UnknownError = "Unknown error"

// Object is a decoded JSON object. Every accessor reports absence or a wrong
// shape through its second return value instead of panicking.
type Object map[string]any

// String returns a non-empty string field
func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StringOr returns a string field or the fallback when absent
func (o Object) StringOr(key, fallback string) string {
	if s, ok := o.String(key); ok {
		return s
	}
	return fallback
}

// Decimal returns a numeric field as a decimal
func (o Object) Decimal(key string) (decimal.Decimal, bool) {
	switch v := o[key].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Zero, false
	}
}

// DecimalOrZero returns a numeric field, defaulting to zero
func (o Object) DecimalOrZero(key string) decimal.Decimal {
	d, _ := o.Decimal(key)
	return d
}

// Count returns a numeric field in its original textual form ("42"),
// or "0" when the field is absent.
func (o Object) Count(key string) string {
	switch v := o[key].(type) {
	case json.Number:
		return v.String()
	case float64, int, int64:
		d, _ := o.Decimal(key)
		return d.String()
	default:
		return "0"
	}
}

// Object returns a nested object field
func (o Object) Object(key string) (Object, bool) {
	switch v := o[key].(type) {
	case Object:
		return v, true
	case map[string]any:
		return Object(v), true
	default:
		return nil, false
	}
}

// List returns a nested list field
func (o Object) List(key string) ([]Object, bool) {
	return asList(o[key])
}

// Envelope is the {success, data, error, message} wrapper every inventory
// endpoint returns.
type Envelope struct {
	body Object
	raw  []byte
}

// DecodeEnvelope parses a response body. Numbers keep their exact textual
// form so currency can be formatted without float rounding.
func DecodeEnvelope(data []byte) (Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if body == nil {
		return Envelope{}, fmt.Errorf("decode envelope: body is not a JSON object")
	}

	return Envelope{body: Object(body), raw: data}, nil
}

// Succeeded reports whether the payload's success flag is literally true.
// An absent or malformed flag counts as failure.
func (e Envelope) Succeeded() bool {
	ok, _ := e.body["success"].(bool)
	return ok
}

// ErrorMessage returns the remote error text or a generic fallback
func (e Envelope) ErrorMessage() string {
	return e.body.StringOr("error", UnknownError)
}

// Message returns the optional informational message
func (e Envelope) Message() string {
	return e.body.StringOr("message", "")
}

// DataObject returns data when it is an object
func (e Envelope) DataObject() (Object, bool) {
	return e.body.Object("data")
}

// DataList returns data when it is a list. Elements that are not objects
// are kept as empty objects so counts stay correct.
func (e Envelope) DataList() ([]Object, bool) {
	return e.body.List("data")
}

// Raw returns the original response body
func (e Envelope) Raw() []byte {
	return e.raw
}

func asList(v any) ([]Object, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	list := make([]Object, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			list = append(list, Object(m))
		default:
			list = append(list, Object{})
		}
	}
	return list, true
}

// Result is the outcome of one transport exchange: either a decoded
// envelope or a failure message. It is built per call and never retained.
type Result struct {
	envelope Envelope
	failure  string
	failed   bool
}

// Success wraps a decoded envelope
func Success(env Envelope) Result {
	return Result{envelope: env}
}

// Failure wraps a transport-level fault message
func Failure(message string) Result {
	return Result{failure: message, failed: true}
}

// Envelope returns the envelope of a successful exchange
func (r Result) Envelope() (Envelope, bool) {
	return r.envelope, !r.failed
}

// Failure returns the fault message of a failed exchange
func (r Result) Failure() (string, bool) {
	return r.failure, r.failed
}
