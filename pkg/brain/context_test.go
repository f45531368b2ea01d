package brain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, ModeReadonly, c.Mode)
	assert.Equal(t, StyleForward, c.Style)
	assert.Equal(t, ViewSharabilityColoring, c.ViewStyle)
	assert.Equal(t, 2, c.Height)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 0.25, c.MinSharability)
	assert.Equal(t, 1.0, c.MaxSharability)
	require.NotNil(t, c.DefaultSharability)
	assert.Equal(t, 0.5, *c.DefaultSharability)
	assert.Equal(t, 0.0, c.MinWeight)
	assert.Equal(t, 1.0, c.MaxWeight)
	assert.Equal(t, 0.5, c.DefaultWeight)
	assert.Equal(t, 100, c.ValueLengthCutoff)
	assert.False(t, c.MinimizeVerbatimBlocks)
	assert.Equal(t, 0, c.AtomsByID.Len())
}

func TestDefaultReturnsIndependentContexts(t *testing.T) {
	a, b := Default(), Default()
	a.AtomsByID.Put(Atom{ID: "x"})
	a.ViewProperties["k"] = "v"

	assert.Equal(t, 0, b.AtomsByID.Len())
	assert.Empty(t, b.ViewProperties)
}

func TestCloneDecaysDefaultSharability(t *testing.T) {
	tests := []struct {
		name string
		prev *float64
		want float64
	}{
		{"universal is capped", float64Ptr(0.9), 0.75},
		{"exactly the cap", float64Ptr(0.75), 0.75},
		{"below the cap is kept", float64Ptr(0.25), 0.25},
		{"unset falls back", nil, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.DefaultSharability = tt.prev

			clone := c.Clone(1)

			require.NotNil(t, clone.DefaultSharability)
			assert.Equal(t, tt.want, *clone.DefaultSharability)
		})
	}
}

func TestCloneRefreshesLineAndCopies(t *testing.T) {
	c := Default()
	c.Title = "root"
	c.View = json.RawMessage(`{"id":"r"}`)
	c.AtomsByID.Put(Atom{ID: "a", Types: []string{"person"}})
	c.ViewProperties["sort"] = "weight"

	clone := c.Clone(42)

	assert.Equal(t, 42, c.Line, "source records the cursor line")
	assert.Equal(t, 42, clone.Line)
	assert.Equal(t, "root", clone.Title)

	clone.AtomsByID.Put(Atom{ID: "b"})
	clone.ViewProperties["sort"] = "title"
	clone.View[2] = 'X'
	atom, _ := clone.AtomsByID.Get("a")
	atom.Types[0] = "place"

	assert.Equal(t, 1, c.AtomsByID.Len())
	assert.Equal(t, "weight", c.ViewProperties["sort"])
	assert.Equal(t, `{"id":"r"}`, string(c.View))
	orig, _ := c.AtomsByID.Get("a")
	assert.Equal(t, "person", orig.Types[0])
}

func TestCloneDoesNotAliasDefaultSharability(t *testing.T) {
	c := Default()
	clone := c.Clone(1)
	*clone.DefaultSharability = 0.25

	assert.Equal(t, 0.5, *c.DefaultSharability)
}

func TestAdmits(t *testing.T) {
	c := Default()
	c.MinWeight = 0.25

	assert.True(t, c.Admits(Atom{Sharability: 0.5, Weight: 0.5}))
	assert.True(t, c.Admits(Atom{Sharability: 0.25, Weight: 0.25}), "bounds are inclusive")
	assert.False(t, c.Admits(Atom{Sharability: 0.1, Weight: 0.5}))
	assert.False(t, c.Admits(Atom{Sharability: 0.5, Weight: 0.0}))
}

func TestTruncateValue(t *testing.T) {
	c := Default()
	c.ValueLengthCutoff = 5

	assert.Equal(t, "short", c.TruncateValue("short"))
	assert.Equal(t, "a lon...", c.TruncateValue("a longer value"))
	assert.Equal(t, "héllo...", c.TruncateValue("héllo world"), "cuts on runes")

	c.ValueLengthCutoff = 0
	long := strings.Repeat("x", 500)
	assert.Equal(t, long, c.TruncateValue(long))
}

func TestTruncateValueMinimizesVerbatimBlocks(t *testing.T) {
	c := Default()
	c.MinimizeVerbatimBlocks = true

	got := c.TruncateValue("code: {{{\nfunc main() {}\n}}} done")
	assert.Equal(t, "code: {{{...}}} done", got)

	c.MinimizeVerbatimBlocks = false
	assert.Contains(t, c.TruncateValue("{{{x}}}"), "{{{x}}}")
}

func TestContextJSONRoundTripKeepsEnums(t *testing.T) {
	c := Default()
	c.Mode = ModeSearch
	c.QueryType = QueryAcronym

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mode":"search"`)

	var back Context
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ModeSearch, back.Mode)
	assert.Equal(t, QueryAcronym, back.QueryType)

	err = json.Unmarshal([]byte(`{"mode":"edit"}`), &back)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAtomCache(t *testing.T) {
	cache := AtomCache{}
	cache.Put(Atom{ID: "b"}, Atom{ID: "a"}, Atom{Title: "no id"})

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, []string{"a", "b"}, cache.IDs())

	_, ok := cache.Get("a")
	assert.True(t, ok)

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
}
