package schema

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNullValue = errors.New("null is not allowed for this field")

// Optional records whether a JSON field was present in the request body,
// independently of its value. A field sent as "" or 0 is Set; a field left
// out of the body is not. An explicit null is rejected.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// Ptr returns a pointer to the value, or nil when the field was absent.
func (o Optional[T]) Ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return ErrNullValue
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	o.Value = v
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
