package brain

import "fmt"

// Guard names accepted by CheckGuard.
const (
	GuardReadwrite     = "readwrite"
	GuardView          = "view"
	GuardSetProperties = "setproperties"
)

func (c *Context) InReadonlyMode() bool  { return c.Mode == ModeReadonly }
func (c *Context) InReadwriteMode() bool { return c.Mode == ModeReadwrite }
func (c *Context) InSearchMode() bool    { return c.Mode == ModeSearch }

func (c *Context) IsForwardStyle() bool  { return c.Style == StyleForward }
func (c *Context) IsBackwardStyle() bool { return c.Style == StyleBackward }

func (c *Context) UsesSharabilityColoring() bool { return c.ViewStyle == ViewSharabilityColoring }
func (c *Context) UsesInferenceColoring() bool   { return c.ViewStyle == ViewInferenceColoring }

// AssertReadwrite gates every command that mutates the graph.
func (c *Context) AssertReadwrite() error {
	if c.Mode != ModeReadwrite {
		return wrongMode(fmt.Sprintf("cannot modify the graph in %s mode", c.Mode))
	}
	return nil
}

// InViewMode gates tree rendering commands; search results are not a tree view.
func (c *Context) InViewMode() error {
	switch c.Mode {
	case ModeReadonly, ModeReadwrite:
		return nil
	}
	return wrongMode(fmt.Sprintf("not a tree view (%s mode)", c.Mode))
}

// InSetPropertiesMode allows property commands in every mode, search included.
func (c *Context) InSetPropertiesMode() error {
	switch c.Mode {
	case ModeSearch, ModeReadonly, ModeReadwrite:
		return nil
	}
	return wrongMode(fmt.Sprintf("cannot set properties in %q mode", c.Mode))
}

// CheckGuard runs the guard with the given name.
func (c *Context) CheckGuard(name string) error {
	switch name {
	case GuardReadwrite:
		return c.AssertReadwrite()
	case GuardView:
		return c.InViewMode()
	case GuardSetProperties:
		return c.InSetPropertiesMode()
	}
	return invalidValue(fmt.Sprintf("unknown guard %q", name))
}

// AssertHeightInBounds checks MinHeight <= h <= MaxHeight.
func AssertHeightInBounds(h int) error {
	if h < MinHeight {
		return &Error{
			Kind:    KindHeightOutOfBounds,
			Message: fmt.Sprintf("height of %d is too low (must be >= %d)", h, MinHeight),
		}
	}
	if h > MaxHeight {
		return &Error{
			Kind:    KindHeightOutOfBounds,
			Message: fmt.Sprintf("height of %d is too high (must be <= %d)", h, MaxHeight),
		}
	}
	return nil
}
