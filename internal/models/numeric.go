// internal/models/numeric.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NumericInput is a form value that arrives either as a JSON number or as
// locale formatted text ("99,90"). It keeps the raw text so that the
// calculator can decide how to normalize it.
type NumericInput struct {
	Raw string
	Set bool
}

// Number wraps an already parsed value.
func Number(v float64) NumericInput {
	return NumericInput{Raw: strconv.FormatFloat(v, 'f', -1, 64), Set: true}
}

// Text wraps raw form text.
func Text(s string) NumericInput {
	return NumericInput{Raw: s, Set: true}
}

// IsBlank reports whether the field was omitted, null or an empty string.
func (n NumericInput) IsBlank() bool {
	return !n.Set || strings.TrimSpace(n.Raw) == ""
}

func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = NumericInput{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Text(s)
		return nil
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*n = NumericInput{Raw: string(data), Set: true}
		return nil
	default:
		return fmt.Errorf("numeric field must be a number or text, got %s", data)
	}
}

func (n NumericInput) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}
