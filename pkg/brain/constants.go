package brain

import "fmt"

// Mode is the view mode of a context.
type Mode string

const (
	ModeReadonly  Mode = "readonly"
	ModeReadwrite Mode = "readwrite"
	ModeSearch    Mode = "search"
)

// Style is the tree layout direction.
type Style string

const (
	StyleForward  Style = "forward"  // parents above children
	StyleBackward Style = "backward" // children above parents
)

// ViewStyle selects how atoms are coloured.
type ViewStyle string

const (
	ViewSharabilityColoring ViewStyle = "sharability-coloring"
	ViewInferenceColoring   ViewStyle = "inference-coloring"
)

// QueryType is the kind of search that produced a search view.
type QueryType string

const (
	QueryNone     QueryType = ""
	QueryFullText QueryType = "fulltext"
	QueryAcronym  QueryType = "acronym"
	QueryShortcut QueryType = "shortcut"
	QueryRipple   QueryType = "ripple"
)

// Sharability levels
const (
	SharabilityPrivate   = 0.25
	SharabilityPersonal  = 0.5
	SharabilityPublic    = 0.75
	SharabilityUniversal = 1.0
)

// Weight levels
const (
	WeightNone   = 0.0
	WeightLow    = 0.25
	WeightNormal = 0.5
	WeightHigh   = 0.75
	WeightMax    = 1.0
)

const (
	MinHeight = 1
	MaxHeight = 7

	// CloneSharabilityCap bounds the default sharability carried into a cloned view.
	// A user who wants a universal default in the new view has to set it again.
	CloneSharabilityCap = SharabilityPublic
	// FallbackSharability is used when a cloned context never had a default.
	FallbackSharability = SharabilityPersonal

	DefaultHeight            = 2
	DefaultLine              = 1
	DefaultValueLengthCutoff = 100
)

// ParseMode converts a wire string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeReadonly, ModeReadwrite, ModeSearch:
		return m, nil
	}
	return "", invalidValue(fmt.Sprintf("unknown mode %q", s))
}

// ParseStyle converts a wire string into a Style.
func ParseStyle(s string) (Style, error) {
	switch st := Style(s); st {
	case StyleForward, StyleBackward:
		return st, nil
	}
	return "", invalidValue(fmt.Sprintf("unknown style %q", s))
}

// ParseViewStyle converts a wire string into a ViewStyle.
func ParseViewStyle(s string) (ViewStyle, error) {
	switch vs := ViewStyle(s); vs {
	case ViewSharabilityColoring, ViewInferenceColoring:
		return vs, nil
	}
	return "", invalidValue(fmt.Sprintf("unknown view style %q", s))
}

// ParseQueryType converts a wire string into a QueryType. The empty string is QueryNone.
func ParseQueryType(s string) (QueryType, error) {
	switch qt := QueryType(s); qt {
	case QueryNone, QueryFullText, QueryAcronym, QueryShortcut, QueryRipple:
		return qt, nil
	}
	return "", invalidValue(fmt.Sprintf("unknown query type %q", s))
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s), nil }

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (vs ViewStyle) MarshalText() ([]byte, error) { return []byte(vs), nil }

func (vs *ViewStyle) UnmarshalText(b []byte) error {
	v, err := ParseViewStyle(string(b))
	if err != nil {
		return err
	}
	*vs = v
	return nil
}

func (qt QueryType) MarshalText() ([]byte, error) { return []byte(qt), nil }

func (qt *QueryType) UnmarshalText(b []byte) error {
	v, err := ParseQueryType(string(b))
	if err != nil {
		return err
	}
	*qt = v
	return nil
}
