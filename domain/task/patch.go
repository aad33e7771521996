package task

import (
	"bytes"
	"encoding/json"
)

// Field is a JSON value that remembers whether it was present in the
// document, and if so whether it was an explicit null.
//
// The zero Field is "absent". Use the omitzero tag option so absent fields
// are left out when a Field is marshalled again.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a present Field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for an explicit null and the value otherwise.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IsZero reports whether the field was absent.
func (f Field[T]) IsZero() bool {
	return !f.Set
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Patch is a partial update of a task. Ownership and timestamps are not
// patchable.
type Patch struct {
	Title       Field[string] `json:"title,omitzero"`
	Description Field[string] `json:"description,omitzero"`
	Status      Field[string] `json:"status,omitzero"`
	ImageURL    Field[string] `json:"imageUrl,omitzero"`
}

// Empty reports whether the patch names no field at all.
func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.ImageURL.Set
}

// Apply merges the patch into t.
//
// Title, description and status are replaced only when a non-null value was
// sent; an empty string does overwrite. The image URL is kept when absent,
// cleared when null or empty, and replaced otherwise.
func (p Patch) Apply(t *Task) {
	if p.Title.Present() {
		t.Title = p.Title.Value
	}
	if p.Description.Present() {
		t.Description = p.Description.Value
	}
	if p.Status.Present() {
		t.Status = p.Status.Value
	}
	if p.ImageURL.Set {
		if p.ImageURL.Null || p.ImageURL.Value == "" {
			t.ImageURL = nil
		} else {
			url := p.ImageURL.Value
			t.ImageURL = &url
		}
	}
}
