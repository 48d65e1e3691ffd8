package flatten

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON is matched by every ParseError.
var ErrInvalidJSON = errors.New("invalid JSON format")

// ParseError reports text that is not syntactically valid JSON.
type ParseError struct {
	// Snippet holds the beginning of the rejected input.
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v near %q", ErrInvalidJSON, e.Snippet)
}

func (e *ParseError) Unwrap() error { return ErrInvalidJSON }

const snippetLen = 40

func newParseError(raw string) *ParseError {
	s := strings.TrimSpace(raw)
	if r := []rune(s); len(r) > snippetLen {
		s = string(r[:snippetLen]) + "..."
	}
	return &ParseError{Snippet: s}
}

// MaxDepth is the deepest array/object nesting Parse accepts.
const MaxDepth = 10000

// Valid reports whether raw is a syntactically valid JSON document nested no
// deeper than MaxDepth.
func Valid(raw string) bool {
	return gjson.Valid(raw) && nestingDepth(raw) <= MaxDepth
}

// nestingDepth returns the maximum bracket depth of raw, ignoring brackets
// inside strings.
func nestingDepth(raw string) int {
	depth, deepest := 0, 0
	inString, escaped := false, false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '[' || c == '{':
			depth++
			if depth > deepest {
				deepest = depth
			}
		case c == ']' || c == '}':
			depth--
		}
	}
	return deepest
}

// Parse decodes raw into a Value, keeping object members in document order.
// The document is read in a single pass.
func Parse(raw string) (Value, error) {
	if !Valid(raw) {
		return Value{}, newParseError(raw)
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, newParseError(raw)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		if t == '[' {
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return ArrayValue(items...), nil
		}

		var members []Member
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Value{}, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
			}
			item, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: item})
		}
		if _, err := dec.Token(); err != nil {
			return Value{}, err
		}
		return ObjectValue(members...), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// Format re-indents raw with two spaces per level for display.
// Member order is kept; repeated keys collapse the same way Parse does.
func Format(raw string) (string, error) {
	v, err := Parse(raw)
	if err != nil {
		return "", err
	}
	compact, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	opts := *pretty.DefaultOptions
	opts.Indent = "  "
	opts.SortKeys = false
	return strings.TrimRight(string(pretty.PrettyOptions(compact, &opts)), "\n"), nil
}
