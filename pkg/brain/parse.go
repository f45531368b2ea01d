package brain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response is the context-related part of a graph server reply. Every key is optional;
// an absent key leaves the corresponding context field as it is.
type Response struct {
	MinSharability     *float64        `json:"minSharability,omitempty"`
	MaxSharability     *float64        `json:"maxSharability,omitempty"`
	DefaultSharability *float64        `json:"defaultSharability,omitempty"`
	MinWeight          *float64        `json:"minWeight,omitempty"`
	MaxWeight          *float64        `json:"maxWeight,omitempty"`
	DefaultWeight      *float64        `json:"defaultWeight,omitempty"`
	Root               *string         `json:"root,omitempty"`
	Height             *int            `json:"height,omitempty"`
	Style              *Style          `json:"style,omitempty"`
	Title              *string         `json:"title,omitempty"`
	View               json.RawMessage `json:"view,omitempty"`
}

// Parse merges a server response into c. In search mode the height is forced to 1 so that
// search results always render flat.
//
// The bounds are taken as sent: min <= default <= max is not re-checked here.
func (c *Context) Parse(r Response) {
	c.MinSharability = floatOr(r.MinSharability, c.MinSharability)
	c.MaxSharability = floatOr(r.MaxSharability, c.MaxSharability)
	if r.DefaultSharability != nil {
		c.DefaultSharability = float64Ptr(*r.DefaultSharability)
	}
	c.MinWeight = floatOr(r.MinWeight, c.MinWeight)
	c.MaxWeight = floatOr(r.MaxWeight, c.MaxWeight)
	c.DefaultWeight = floatOr(r.DefaultWeight, c.DefaultWeight)

	if r.Root != nil {
		c.RootID = *r.Root
	}
	if r.Style != nil {
		c.Style = *r.Style
	}
	if r.Title != nil {
		c.Title = *r.Title
	}
	if len(r.View) > 0 {
		c.View = append(json.RawMessage(nil), r.View...)
	}

	switch {
	case c.Mode == ModeSearch:
		c.Height = 1
	case r.Height != nil:
		c.Height = *r.Height
	}
}

// ParseResponse decodes a JSON server response and merges it into c. Malformed payloads
// fail with KindInvalidValue and leave c untouched.
func (c *Context) ParseResponse(payload []byte) error {
	var r Response
	if err := json.Unmarshal(payload, &r); err != nil {
		var berr *Error
		if errors.As(err, &berr) {
			return err
		}
		return invalidValue(fmt.Sprintf("malformed server response: %v", err))
	}
	c.Parse(r)
	return nil
}

func floatOr(v *float64, current float64) float64 {
	if v == nil {
		return current
	}
	return *v
}
