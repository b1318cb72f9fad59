// Package validate checks decoded JSON mutation payloads against a
// resource's field sets. Both entry points are pure and never touch the
// store; a payload that comes back non-nil contains only recognized keys.
package validate

import "fmt"

// Payload is a decoded JSON object body.
type Payload map[string]any

// MissingFieldError reports the first required field absent from a create
// payload, in the resource's canonical field order.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// NoFieldsError reports an update payload that supplied none of the
// resource's updatable fields.
type NoFieldsError struct {
	Fields []string
}

func (e *NoFieldsError) Error() string {
	return "no updatable fields supplied"
}

// Create checks that every name in required is present as a key in the
// payload. Names are checked in order and the first absent one is returned
// as a *MissingFieldError. A key set to JSON null counts as present; only
// key absence rejects. On success the payload is restricted to known keys,
// dropping anything unrecognized.
func Create(p Payload, required, known []string) (Payload, error) {
	for _, name := range required {
		if _, ok := p[name]; !ok {
			return nil, &MissingFieldError{Field: name}
		}
	}

	out := make(Payload, len(known))
	for _, name := range known {
		if v, ok := p[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}

// Update intersects the payload's keys with updatable. An empty
// intersection returns a *NoFieldsError carrying the updatable set for
// error shaping; otherwise only the intersecting pairs are returned.
func Update(p Payload, updatable []string) (Payload, error) {
	out := make(Payload, len(updatable))
	for _, name := range updatable {
		if v, ok := p[name]; ok {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil, &NoFieldsError{Fields: updatable}
	}
	return out, nil
}
