// Package palette colours outline atoms according to the view style of a context.
package palette

import (
	"hash/fnv"

	"brainmode-be/pkg/brain"

	"github.com/charmbracelet/lipgloss"
)

// Scheme is a terminal background family.
type Scheme string

const (
	SchemeDark  Scheme = "dark"
	SchemeLight Scheme = "light"
)

type bandColors struct {
	private, personal, public, universal lipgloss.Color
}

var sharabilityColors = map[Scheme]bandColors{
	SchemeDark:  {private: "196", personal: "214", public: "42", universal: "39"},
	SchemeLight: {private: "124", personal: "130", public: "28", universal: "25"},
}

var inferenceColors = map[Scheme][]lipgloss.Color{
	SchemeDark:  {"81", "141", "178", "114", "204", "75", "221", "168"},
	SchemeLight: {"31", "91", "136", "64", "161", "26", "130", "125"},
}

var untyped = map[Scheme]lipgloss.Color{
	SchemeDark:  "245",
	SchemeLight: "240",
}

// Palette picks colours for one scheme.
type Palette struct {
	scheme Scheme
}

// New returns a palette for scheme. Unknown schemes fall back to dark.
func New(scheme Scheme) *Palette {
	if _, ok := sharabilityColors[scheme]; !ok {
		scheme = SchemeDark
	}
	return &Palette{scheme: scheme}
}

func (p *Palette) Scheme() Scheme {
	return p.scheme
}

// Color returns the foreground colour of an atom under the context's view style.
func (p *Palette) Color(c *brain.Context, a brain.Atom) lipgloss.Color {
	if c.UsesInferenceColoring() {
		return p.inferenceColor(a)
	}
	return p.sharabilityColor(a.Sharability)
}

// Style adds weight emphasis on top of Color: heavy atoms are bold, light ones faint.
func (p *Palette) Style(c *brain.Context, a brain.Atom) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(p.Color(c, a))
	switch {
	case a.Weight >= brain.WeightHigh:
		st = st.Bold(true)
	case a.Weight <= brain.WeightLow:
		st = st.Faint(true)
	}
	return st
}

func (p *Palette) Render(c *brain.Context, a brain.Atom, text string) string {
	return p.Style(c, a).Render(text)
}

func (p *Palette) sharabilityColor(s float64) lipgloss.Color {
	bc := sharabilityColors[p.scheme]
	switch {
	case s <= brain.SharabilityPrivate:
		return bc.private
	case s <= brain.SharabilityPersonal:
		return bc.personal
	case s <= brain.SharabilityPublic:
		return bc.public
	}
	return bc.universal
}

func (p *Palette) inferenceColor(a brain.Atom) lipgloss.Color {
	if len(a.Types) == 0 || a.Types[0] == "" {
		return untyped[p.scheme]
	}
	colors := inferenceColors[p.scheme]
	h := fnv.New32a()
	_, _ = h.Write([]byte(a.Types[0]))
	return colors[h.Sum32()%uint32(len(colors))]
}
