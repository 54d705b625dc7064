package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	msgMissingSessionID = "missing session_id"
	msgMissingAnswer    = "missing user_answer"
	msgAnswerNotNumeric = "user_answer not numeric"
)

// parseAnswer coerces a raw JSON user_answer (number or numeric string) to a
// finite float64.
func parseAnswer(raw json.RawMessage) (float64, *Error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, newError(KindValidation, msgMissingAnswer, nil)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, newError(KindValidation, msgAnswerNotNumeric, err)
	}

	var f float64
	var err error
	switch val := v.(type) {
	case json.Number:
		f, err = val.Float64()
	case string:
		s := strings.TrimSpace(val)
		if s == "" || isHexLiteral(s) {
			return 0, newError(KindValidation, msgAnswerNotNumeric, nil)
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, newError(KindValidation, msgAnswerNotNumeric, nil)
	}
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, newError(KindValidation, msgAnswerNotNumeric, err)
	}
	return f, nil
}

// isHexLiteral reports whether s uses the 0x prefix ParseFloat accepts for hex floats.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
