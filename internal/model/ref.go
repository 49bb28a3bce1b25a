package model

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another document that the backend returns either as
// a bare id string or as the embedded (populated) document.  Callers always
// get the id through ID(); Value is set only when the document was embedded.
type Ref[T any] struct {
	id    string
	Value *T
}

// NewRef builds a reference holding only an id.
func NewRef[T any](id string) Ref[T] { return Ref[T]{id: id} }

// EmbeddedRef builds a reference holding an embedded document.
func EmbeddedRef[T any](id string, v T) Ref[T] { return Ref[T]{id: id, Value: &v} }

// ID returns the referenced document id in both representations.
func (r Ref[T]) ID() string { return r.id }

// Embedded reports whether the referenced document was populated.
func (r Ref[T]) Embedded() bool { return r.Value != nil }

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref[T]{id: id}
		return nil
	}
	var probe struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	id := probe.MongoID
	if id == "" {
		id = probe.ID
	}
	*r = Ref[T]{id: id, Value: &v}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
