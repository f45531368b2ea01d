package brain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field is the symbolic name of a context field.
type Field string

const (
	FieldMode                   Field = "mode"
	FieldStyle                  Field = "style"
	FieldViewStyle              Field = "view-style"
	FieldMinSharability         Field = "min-sharability"
	FieldMaxSharability         Field = "max-sharability"
	FieldDefaultSharability     Field = "default-sharability"
	FieldMinWeight              Field = "min-weight"
	FieldMaxWeight              Field = "max-weight"
	FieldDefaultWeight          Field = "default-weight"
	FieldHeight                 Field = "height"
	FieldRootID                 Field = "root-id"
	FieldTitle                  Field = "title"
	FieldQuery                  Field = "query"
	FieldQueryType              Field = "query-type"
	FieldFile                   Field = "file"
	FieldFormat                 Field = "format"
	FieldLine                   Field = "line"
	FieldView                   Field = "view"
	FieldViewProperties         Field = "view-properties"
	FieldAtomsByID              Field = "atoms-by-id"
	FieldValueLengthCutoff      Field = "value-length-cutoff"
	FieldMinimizeVerbatimBlocks Field = "minimize-verbatim-blocks"
)

// Fields lists every symbolic field name.
var Fields = []Field{
	FieldMode, FieldStyle, FieldViewStyle,
	FieldMinSharability, FieldMaxSharability, FieldDefaultSharability,
	FieldMinWeight, FieldMaxWeight, FieldDefaultWeight,
	FieldHeight, FieldRootID, FieldTitle, FieldQuery, FieldQueryType,
	FieldFile, FieldFormat, FieldLine, FieldView, FieldViewProperties,
	FieldAtomsByID, FieldValueLengthCutoff, FieldMinimizeVerbatimBlocks,
}

// Get returns the value of a field by name. An unset default sharability reads as nil.
func (c *Context) Get(f Field) (any, error) {
	switch f {
	case FieldMode:
		return c.Mode, nil
	case FieldStyle:
		return c.Style, nil
	case FieldViewStyle:
		return c.ViewStyle, nil
	case FieldMinSharability:
		return c.MinSharability, nil
	case FieldMaxSharability:
		return c.MaxSharability, nil
	case FieldDefaultSharability:
		if c.DefaultSharability == nil {
			return nil, nil
		}
		return *c.DefaultSharability, nil
	case FieldMinWeight:
		return c.MinWeight, nil
	case FieldMaxWeight:
		return c.MaxWeight, nil
	case FieldDefaultWeight:
		return c.DefaultWeight, nil
	case FieldHeight:
		return c.Height, nil
	case FieldRootID:
		return c.RootID, nil
	case FieldTitle:
		return c.Title, nil
	case FieldQuery:
		return c.Query, nil
	case FieldQueryType:
		return c.QueryType, nil
	case FieldFile:
		return c.File, nil
	case FieldFormat:
		return c.Format, nil
	case FieldLine:
		return c.Line, nil
	case FieldView:
		return c.View, nil
	case FieldViewProperties:
		return c.ViewProperties, nil
	case FieldAtomsByID:
		return c.AtomsByID, nil
	case FieldValueLengthCutoff:
		return c.ValueLengthCutoff, nil
	case FieldMinimizeVerbatimBlocks:
		return c.MinimizeVerbatimBlocks, nil
	}
	return nil, unknownField(f)
}

// Set assigns a field by name. Values may come straight from decoded JSON (strings,
// float64, bool, maps). Height goes through AssertHeightInBounds; sharability and weight
// values must lie in [0,1]. On error c is unchanged.
func (c *Context) Set(f Field, v any) error {
	switch f {
	case FieldMode:
		s, err := asString(f, v)
		if err != nil {
			return err
		}
		m, err := ParseMode(s)
		if err != nil {
			return err
		}
		c.Mode = m
	case FieldStyle:
		s, err := asString(f, v)
		if err != nil {
			return err
		}
		st, err := ParseStyle(s)
		if err != nil {
			return err
		}
		c.Style = st
	case FieldViewStyle:
		s, err := asString(f, v)
		if err != nil {
			return err
		}
		vs, err := ParseViewStyle(s)
		if err != nil {
			return err
		}
		c.ViewStyle = vs
	case FieldQueryType:
		s, err := asString(f, v)
		if err != nil {
			return err
		}
		qt, err := ParseQueryType(s)
		if err != nil {
			return err
		}
		c.QueryType = qt
	case FieldMinSharability, FieldMaxSharability, FieldMinWeight, FieldMaxWeight, FieldDefaultWeight:
		x, err := asUnit(f, v)
		if err != nil {
			return err
		}
		*c.floatField(f) = x
	case FieldDefaultSharability:
		if v == nil {
			c.DefaultSharability = nil
			return nil
		}
		x, err := asUnit(f, v)
		if err != nil {
			return err
		}
		c.DefaultSharability = float64Ptr(x)
	case FieldHeight:
		h, err := asInt(f, v)
		if err != nil {
			return err
		}
		if err := AssertHeightInBounds(h); err != nil {
			return err
		}
		c.Height = h
	case FieldLine:
		n, err := asInt(f, v)
		if err != nil {
			return err
		}
		if n < 1 {
			return invalidValue(fmt.Sprintf("line must be >= 1, got %d", n))
		}
		c.Line = n
	case FieldValueLengthCutoff:
		n, err := asInt(f, v)
		if err != nil {
			return err
		}
		if n < 0 {
			return invalidValue(fmt.Sprintf("value-length-cutoff must be >= 0 (0 disables truncation), got %d", n))
		}
		c.ValueLengthCutoff = n
	case FieldRootID, FieldTitle, FieldQuery, FieldFile, FieldFormat:
		s, err := asString(f, v)
		if err != nil {
			return err
		}
		*c.stringField(f) = s
	case FieldMinimizeVerbatimBlocks:
		b, ok := v.(bool)
		if !ok {
			return typeMismatch(f, "a boolean", v)
		}
		c.MinimizeVerbatimBlocks = b
	case FieldView:
		raw, err := asRaw(f, v)
		if err != nil {
			return err
		}
		c.View = raw
	case FieldViewProperties:
		props, err := asStringMap(f, v)
		if err != nil {
			return err
		}
		c.ViewProperties = props
	case FieldAtomsByID:
		atoms, ok := v.(AtomCache)
		if !ok {
			return typeMismatch(f, "an atom cache", v)
		}
		c.AtomsByID = atoms
	default:
		return unknownField(f)
	}
	return nil
}

func (c *Context) floatField(f Field) *float64 {
	switch f {
	case FieldMinSharability:
		return &c.MinSharability
	case FieldMaxSharability:
		return &c.MaxSharability
	case FieldMinWeight:
		return &c.MinWeight
	case FieldMaxWeight:
		return &c.MaxWeight
	}
	return &c.DefaultWeight
}

func (c *Context) stringField(f Field) *string {
	switch f {
	case FieldRootID:
		return &c.RootID
	case FieldTitle:
		return &c.Title
	case FieldQuery:
		return &c.Query
	case FieldFile:
		return &c.File
	}
	return &c.Format
}

func unknownField(f Field) error {
	return &Error{Kind: KindUnknownField, Message: fmt.Sprintf("no such context field: %q", f)}
}

func typeMismatch(f Field, want string, v any) error {
	return invalidValue(fmt.Sprintf("%s expects %s, got %T", f, want, v))
}

func asString(f Field, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case Mode:
		return string(s), nil
	case Style:
		return string(s), nil
	case ViewStyle:
		return string(s), nil
	case QueryType:
		return string(s), nil
	}
	return "", typeMismatch(f, "a string", v)
}

func asFloat(f Field, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, typeMismatch(f, "a number", v)
		}
		return x, nil
	}
	return 0, typeMismatch(f, "a number", v)
}

func asUnit(f Field, v any) (float64, error) {
	x, err := asFloat(f, v)
	if err != nil {
		return 0, err
	}
	if x < 0 || x > 1 || math.IsNaN(x) {
		return 0, invalidValue(fmt.Sprintf("%s must be within [0, 1], got %g", f, x))
	}
	return x, nil
}

func asInt(f Field, v any) (int, error) {
	x, err := asFloat(f, v)
	if err != nil {
		return 0, err
	}
	if x != math.Trunc(x) || x > math.MaxInt32 || x < math.MinInt32 {
		return 0, typeMismatch(f, "an integer", v)
	}
	return int(x), nil
}

func asRaw(f Field, v any) (json.RawMessage, error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return append(json.RawMessage(nil), r...), nil
	case []byte:
		if !json.Valid(r) {
			return nil, typeMismatch(f, "JSON", v)
		}
		return append(json.RawMessage(nil), r...), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, typeMismatch(f, "JSON", v)
	}
	return b, nil
}

func asStringMap(f Field, v any) (map[string]string, error) {
	switch m := v.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, x := range m {
			s, ok := x.(string)
			if !ok {
				return nil, typeMismatch(f, "string values", x)
			}
			out[k] = s
		}
		return out, nil
	}
	return nil, typeMismatch(f, "an object", v)
}
