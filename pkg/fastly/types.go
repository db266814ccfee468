package fastly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FlexInt decodes integers Fastly sends either as JSON numbers or as quoted
// strings, e.g. "format_version": "2". It always encodes as a number.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var raw string

		err := json.Unmarshal(data, &raw)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidFlexInt, string(data))
		}

		if raw == "" {
			*f = 0

			return nil
		}

		data = []byte(raw)
	}

	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFlexInt, string(data))
	}

	*f = FlexInt(value)

	return nil
}

// Int returns the value as an int.
func (f FlexInt) Int() int {
	return int(f)
}

// String returns a pointer to the given string.
func String(v string) *string {
	return &v
}

// Int returns a pointer to the given int.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to the given bool.
func Bool(v bool) *bool {
	return &v
}

// Timestamps are the audit fields carried by most Fastly resources.
type Timestamps struct {
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// DeleteResponse is returned by delete endpoints, e.g. {"status":"ok"}.
type DeleteResponse struct {
	Status string `json:"status" yaml:"status"`
}

// OK reports whether the server acknowledged the deletion.
func (r *DeleteResponse) OK() bool {
	return r != nil && r.Status == "ok"
}

// VersionTarget addresses a service version.
type VersionTarget struct {
	ServiceID      string `url:"-" json:"-" yaml:"-"`
	ServiceVersion int    `url:"-" json:"-" yaml:"-"`
}

// Target returns the receiver. It lets inputs that embed a VersionTarget
// satisfy TargetedInput.
func (t VersionTarget) Target() VersionTarget {
	return t
}

// Validate checks that both fields are set.
func (t VersionTarget) Validate() error {
	if t.ServiceID == "" {
		return ErrMissingServiceID
	}

	if t.ServiceVersion <= 0 {
		return ErrMissingServiceVersion
	}

	return nil
}

// EndpointTarget addresses a named object inside a service version.
type EndpointTarget struct {
	ServiceID      string `url:"-" json:"-" yaml:"-"`
	ServiceVersion int    `url:"-" json:"-" yaml:"-"`
	Name           string `url:"-" json:"-" yaml:"-"`
}

// Target returns the version part of the address.
func (t EndpointTarget) Target() VersionTarget {
	return VersionTarget{ServiceID: t.ServiceID, ServiceVersion: t.ServiceVersion}
}

// EndpointName returns the name part of the address.
func (t EndpointTarget) EndpointName() string {
	return t.Name
}

// Validate checks that all fields are set.
func (t EndpointTarget) Validate() error {
	err := t.Target().Validate()
	if err != nil {
		return err
	}

	if t.Name == "" {
		return ErrMissingName
	}

	return nil
}

// TargetedInput is implemented by create inputs.
type TargetedInput interface {
	Target() VersionTarget
}

// EndpointInput is implemented by update inputs.
type EndpointInput interface {
	Target() VersionTarget
	EndpointName() string
}
