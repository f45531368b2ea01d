package brain

import (
	"encoding/json"
	"regexp"
	"unicode/utf8"
)

// Context is the session state of one outline view.
type Context struct {
	Mode      Mode      `json:"mode"`
	Style     Style     `json:"style"`
	ViewStyle ViewStyle `json:"view_style"`

	MinSharability float64 `json:"min_sharability"`
	MaxSharability float64 `json:"max_sharability"`
	// DefaultSharability is nil until a default has been chosen.
	DefaultSharability *float64 `json:"default_sharability,omitempty"`

	MinWeight     float64 `json:"min_weight"`
	MaxWeight     float64 `json:"max_weight"`
	DefaultWeight float64 `json:"default_weight"`

	Height    int       `json:"height"`
	RootID    string    `json:"root_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Query     string    `json:"query,omitempty"`
	QueryType QueryType `json:"query_type,omitempty"`
	File      string    `json:"file,omitempty"`
	Format    string    `json:"format,omitempty"`
	Line      int       `json:"line"`

	View           json.RawMessage   `json:"view,omitempty"`
	ViewProperties map[string]string `json:"view_properties,omitempty"`
	AtomsByID      AtomCache         `json:"atoms_by_id"`

	ValueLengthCutoff      int  `json:"value_length_cutoff"`
	MinimizeVerbatimBlocks bool `json:"minimize_verbatim_blocks"`
}

// Default returns a fresh context with the initial settings of a new view.
func Default() *Context {
	return &Context{
		Mode:               ModeReadonly,
		Style:              StyleForward,
		ViewStyle:          ViewSharabilityColoring,
		MinSharability:     SharabilityPrivate,
		MaxSharability:     SharabilityUniversal,
		DefaultSharability: float64Ptr(SharabilityPersonal),
		MinWeight:          WeightNone,
		MaxWeight:          WeightMax,
		DefaultWeight:      WeightNormal,
		Height:             DefaultHeight,
		Line:               DefaultLine,
		ViewProperties:     map[string]string{},
		AtomsByID:          AtomCache{},
		ValueLengthCutoff:  DefaultValueLengthCutoff,
	}
}

// Copy returns a deep copy of c.
func (c *Context) Copy() *Context {
	out := *c
	if c.DefaultSharability != nil {
		out.DefaultSharability = float64Ptr(*c.DefaultSharability)
	}
	if c.View != nil {
		out.View = append(json.RawMessage(nil), c.View...)
	}
	if c.ViewProperties != nil {
		out.ViewProperties = make(map[string]string, len(c.ViewProperties))
		for k, v := range c.ViewProperties {
			out.ViewProperties[k] = v
		}
	}
	if c.AtomsByID != nil {
		out.AtomsByID = c.AtomsByID.clone()
	}
	return &out
}

// Clone records the caller's cursor line on c and returns an independent copy whose default
// sharability has been decayed: min(previous, CloneSharabilityCap), or FallbackSharability
// when no default was set.
func (c *Context) Clone(line int) *Context {
	c.Line = line

	out := c.Copy()
	out.DefaultSharability = float64Ptr(decaySharability(c.DefaultSharability))
	return out
}

func decaySharability(prev *float64) float64 {
	if prev == nil {
		return FallbackSharability
	}
	if *prev > CloneSharabilityCap {
		return CloneSharabilityCap
	}
	return *prev
}

// DefaultSharabilityOr returns the default sharability or fallback when none is set.
func (c *Context) DefaultSharabilityOr(fallback float64) float64 {
	if c.DefaultSharability == nil {
		return fallback
	}
	return *c.DefaultSharability
}

// Admits reports whether an atom passes the sharability and weight filters of the view.
func (c *Context) Admits(a Atom) bool {
	return a.Sharability >= c.MinSharability && a.Sharability <= c.MaxSharability &&
		a.Weight >= c.MinWeight && a.Weight <= c.MaxWeight
}

var verbatimBlock = regexp.MustCompile(`(?s)\{\{\{.*?\}\}\}`)

const (
	truncationSuffix = "..."
	minimizedBlock   = "{{{...}}}"
)

// TruncateValue prepares an atom value for display. Verbatim blocks are collapsed when
// MinimizeVerbatimBlocks is set, then the value is cut to ValueLengthCutoff runes.
// A cutoff of zero or less disables truncation.
func (c *Context) TruncateValue(s string) string {
	if c.MinimizeVerbatimBlocks {
		s = verbatimBlock.ReplaceAllString(s, minimizedBlock)
	}
	if c.ValueLengthCutoff <= 0 || utf8.RuneCountInString(s) <= c.ValueLengthCutoff {
		return s
	}
	runes := []rune(s)
	return string(runes[:c.ValueLengthCutoff]) + truncationSuffix
}

func float64Ptr(v float64) *float64 {
	return &v
}
