package models

import (
	"bytes"
	"encoding/json"
)

// CreateUserPayload is the body of a create request. Optional fields left
// empty receive defaults during normalization.
type CreateUserPayload struct {
	UserID       string     `json:"userid"`
	Name         string     `json:"name"`
	DefaultGroup string     `json:"defaultGroup"`
	Owner        string     `json:"owner,omitempty"`
	Status       Status     `json:"status,omitempty"`
	AuthOption   AuthOption `json:"authOption,omitempty"`
	Expiration   string     `json:"expiration,omitempty"`
}

// Optional is a field that may be absent from a JSON object, present with a
// value, or present as null. The zero value is absent.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// IsZero makes absent fields disappear under the omitzero tag.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// UpdateUserPayload is a partial update. Only fields with Set are applied.
// Expiration distinguishes "leave alone" (absent) from "clear" (null or "").
type UpdateUserPayload struct {
	UserID       Optional[string]     `json:"userid,omitzero"`
	Name         Optional[string]     `json:"name,omitzero"`
	DefaultGroup Optional[string]     `json:"defaultGroup,omitzero"`
	Owner        Optional[string]     `json:"owner,omitzero"`
	Status       Optional[Status]     `json:"status,omitzero"`
	AuthOption   Optional[AuthOption] `json:"authOption,omitzero"`
	Expiration   Optional[string]     `json:"expiration,omitzero"`
}

// Empty reports whether the payload changes nothing.
func (p UpdateUserPayload) Empty() bool {
	return !p.UserID.Set && !p.Name.Set && !p.DefaultGroup.Set && !p.Owner.Set &&
		!p.Status.Set && !p.AuthOption.Set && !p.Expiration.Set
}

// Apply merges the present fields into rec. ID and CreatedAt are never touched.
// The payload is expected to be normalized already.
func (p UpdateUserPayload) Apply(rec *UserRecord) {
	if p.UserID.Set {
		rec.UserID = p.UserID.Value
	}
	if p.Name.Set {
		rec.Name = p.Name.Value
	}
	if p.DefaultGroup.Set {
		rec.DefaultGroup = p.DefaultGroup.Value
	}
	if p.Owner.Set {
		rec.Owner = p.Owner.Value
	}
	if p.Status.Set {
		rec.Status = p.Status.Value
	}
	if p.AuthOption.Set {
		rec.AuthOption = p.AuthOption.Value
	}
	if p.Expiration.Set {
		rec.Expiration = p.Expiration.Value
	}
}
