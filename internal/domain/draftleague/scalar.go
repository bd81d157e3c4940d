package draftleague

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type ScalarKind uint8

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
	ScalarOther
)

// Scalar keeps a JSON value whose native type the upstream does not pin down,
// such as identifiers that arrive as either numbers or strings.
type Scalar struct {
	kind ScalarKind
	text string
	num  float64
}

func StringScalar(v string) Scalar {
	return Scalar{kind: ScalarString, text: v}
}

func NumberScalar(v float64) Scalar {
	return Scalar{kind: ScalarNumber, text: strconv.FormatFloat(v, 'f', -1, 64), num: v}
}

func IntScalar(v int64) Scalar {
	return Scalar{kind: ScalarNumber, text: strconv.FormatInt(v, 10), num: float64(v)}
}

func (s Scalar) Kind() ScalarKind {
	return s.kind
}

func (s Scalar) IsNull() bool {
	return s.kind == ScalarNull
}

// Raw returns the value as it appeared upstream, without JSON quoting.
func (s Scalar) Raw() string {
	if s.kind == ScalarNull {
		return "null"
	}
	return s.text
}

// Canonical is the string form used when comparing identifiers. Integral
// numbers print without fraction or exponent so 7, 7.0 and "7" all agree.
func (s Scalar) Canonical() string {
	switch s.kind {
	case ScalarString:
		return strings.TrimSpace(s.text)
	case ScalarNumber:
		if isIntegerLiteral(s.text) {
			return s.text
		}
		if math.IsInf(s.num, 0) || math.IsNaN(s.num) {
			return ""
		}
		if s.num == math.Trunc(s.num) && math.Abs(s.num) < 1<<53 {
			return strconv.FormatInt(int64(s.num), 10)
		}
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	case ScalarBool:
		return s.text
	default:
		return ""
	}
}

// Float coerces the value to a finite number. ok is false for null, booleans,
// composite values and strings that are not plain decimal numbers.
func (s Scalar) Float() (value float64, ok bool) {
	switch s.kind {
	case ScalarNumber:
		value = s.num
	case ScalarString:
		text := strings.TrimSpace(s.text)
		if text == "" || strings.ContainsAny(text, "xX_") {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*s = Scalar{}
	case raw[0] == '"':
		var text string
		if err := sonic.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("decode string scalar: %w", err)
		}
		*s = Scalar{kind: ScalarString, text: text}
	case bytes.Equal(raw, []byte("true")), bytes.Equal(raw, []byte("false")):
		*s = Scalar{kind: ScalarBool, text: string(raw)}
	case raw[0] == '{' || raw[0] == '[':
		*s = Scalar{kind: ScalarOther, text: string(raw)}
	default:
		num, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("decode numeric scalar %q: %w", raw, err)
		}
		*s = Scalar{kind: ScalarNumber, text: string(raw), num: num}
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScalarString:
		return sonic.Marshal(s.text)
	case ScalarNumber, ScalarBool, ScalarOther:
		return []byte(s.text), nil
	default:
		return []byte("null"), nil
	}
}

func isIntegerLiteral(v string) bool {
	digits := strings.TrimPrefix(v, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
