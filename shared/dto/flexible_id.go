package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleID is an identifier that may arrive as a JSON string or a JSON number.
// Numbers are coerced to their shortest decimal form, so 42, 42.0 and "42" are equal.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*f = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("failed to decode id: %w", err)
		}

		*f = FlexibleID(strings.TrimSpace(str))

		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}

	*f = FlexibleID(normalizeNumber(number))

	return nil
}

func (f FlexibleID) String() string {
	return string(f)
}

// Equal compares two ids using string coercion.
func (f FlexibleID) Equal(other string) bool {
	return strings.TrimSpace(string(f)) == strings.TrimSpace(other)
}

func normalizeNumber(number json.Number) string {
	raw := number.String()

	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return raw
	}

	value, err := number.Float64()
	if err != nil {
		return raw
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}
