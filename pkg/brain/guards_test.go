package brain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertHeightInBounds(t *testing.T) {
	for h := -2; h <= 10; h++ {
		t.Run(fmt.Sprintf("height_%d", h), func(t *testing.T) {
			err := AssertHeightInBounds(h)
			if h >= MinHeight && h <= MaxHeight {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrHeightOutOfBounds)
			if h < MinHeight {
				assert.Contains(t, err.Error(), "1")
			} else {
				assert.Contains(t, err.Error(), "7")
			}
		})
	}
}

func TestModeGuards(t *testing.T) {
	tests := []struct {
		mode          Mode
		readwrite     bool
		view          bool
		setProperties bool
	}{
		{ModeReadonly, false, true, true},
		{ModeReadwrite, true, true, true},
		{ModeSearch, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := Default()
			c.Mode = tt.mode

			check := func(name string, err error, want bool) {
				if want {
					assert.NoError(t, err, name)
					return
				}
				assert.ErrorIs(t, err, ErrWrongMode, name)
				assert.NotEmpty(t, err.Error(), name)
			}
			check("readwrite", c.AssertReadwrite(), tt.readwrite)
			check("view", c.InViewMode(), tt.view)
			check("setproperties", c.InSetPropertiesMode(), tt.setProperties)

			check("guard readwrite", c.CheckGuard(GuardReadwrite), tt.readwrite)
			check("guard view", c.CheckGuard(GuardView), tt.view)
			check("guard setproperties", c.CheckGuard(GuardSetProperties), tt.setProperties)
		})
	}
}

func TestInViewModeMessageNamesMode(t *testing.T) {
	c := Default()
	c.Mode = ModeSearch

	err := c.InViewMode()

	var berr *Error
	assert.True(t, errors.As(err, &berr))
	assert.Equal(t, KindWrongMode, berr.Kind)
	assert.Contains(t, berr.Message, "search")
}

func TestCheckGuardUnknownName(t *testing.T) {
	assert.ErrorIs(t, Default().CheckGuard("delete"), ErrInvalidValue)
}

func TestPredicates(t *testing.T) {
	c := Default()
	assert.True(t, c.InReadonlyMode())
	assert.False(t, c.InReadwriteMode())
	assert.False(t, c.InSearchMode())
	assert.True(t, c.IsForwardStyle())
	assert.False(t, c.IsBackwardStyle())
	assert.True(t, c.UsesSharabilityColoring())
	assert.False(t, c.UsesInferenceColoring())

	c.Mode = ModeSearch
	c.Style = StyleBackward
	c.ViewStyle = ViewInferenceColoring
	assert.True(t, c.InSearchMode())
	assert.True(t, c.IsBackwardStyle())
	assert.True(t, c.UsesInferenceColoring())
}

func TestErrorIsMatchesOnKindOnly(t *testing.T) {
	err := &Error{Kind: KindUnknownField, Message: "no such context field: \"x\""}
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.NotErrorIs(t, err, ErrWrongMode)
	assert.Equal(t, "unknown_field", err.Kind.String())
}
