package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the storage type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindTime
	KindText
)

// Value is a tagged scalar cell: number, text, timestamp or null.
// Columns may mix kinds; the inferencer and aggregator operate over
// this variant rather than raw interface{} values.
type Value struct {
	kind Kind
	num  float64
	text string
	ts   time.Time
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Timestamp returns a timestamp value.
func Timestamp(t time.Time) Value { return Value{kind: KindTime, ts: t} }

// Kind returns the storage kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload. The second return is false for
// non-numeric kinds.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the timestamp payload. The second return is false for
// non-timestamp kinds.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.ts, true
}

// Text returns the text payload, or "" for non-text kinds.
func (v Value) Text() string {
	if v.kind != KindText {
		return ""
	}
	return v.text
}

// Export converts the value to its transport representation: nil for
// null, float64 for numbers, string for text, and an ISO-8601 string
// for timestamps.
func (v Value) Export() interface{} {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindTime:
		return v.ts.Format(time.RFC3339)
	case KindText:
		return v.text
	default:
		return nil
	}
}

// Label returns a display string used for series naming. Null becomes
// the literal "(empty)" label.
func (v Value) Label() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.ts.Format(time.RFC3339)
	case KindText:
		return v.text
	default:
		return "(empty)"
	}
}

// Equal reports value equality on the raw kind. Values of different
// kinds are never equal; two nulls are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindTime:
		return v.ts.Equal(o.ts)
	case KindText:
		return v.text == o.text
	default:
		return true
	}
}

// Compare orders two values of the same non-null kind. The second
// return is false when the pair is not comparable (either side null,
// or mixed kinds); callers treat that as "does not match".
func (v Value) Compare(o Value) (int, bool) {
	if v.kind != o.kind || v.kind == KindNull {
		return 0, false
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1, true
		case v.num > o.num:
			return 1, true
		default:
			return 0, true
		}
	case KindTime:
		switch {
		case v.ts.Before(o.ts):
			return -1, true
		case v.ts.After(o.ts):
			return 1, true
		default:
			return 0, true
		}
	default:
		return strings.Compare(v.text, o.text), true
	}
}

// Less imposes a deterministic total order across kinds for stable
// group sorting: non-null before null, numbers before timestamps
// before text, natural order within a kind.
func Less(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return b.kind == KindNull && a.kind != KindNull
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	c, _ := a.Compare(b)
	return c < 0
}

// GroupKey returns a canonical string key for group-by bucketing.
// Keys are prefixed by kind so values of different kinds never collide.
func (v Value) GroupKey() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindTime:
		return "t:" + v.ts.Format(time.RFC3339Nano)
	case KindText:
		return "s:" + v.text
	default:
		return "z:"
	}
}

// AsNumber attempts numeric coercion: numbers pass through, text is
// parsed with thousands separators stripped. Null, timestamps and
// unparseable text do not coerce.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		s := strings.ReplaceAll(strings.TrimSpace(v.text), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// cellLayouts are the strict datetime layouts the loader recognizes at
// read time. The inferencer additionally tries inferLayouts on text.
var cellLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// inferLayouts are the extra, looser layouts consulted only by the
// datetime inference heuristic.
var inferLayouts = []string{
	"2006-01-02 15:04",
	"2006-1-2",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan 2006",
	"2006-01",
}

// ParseTimestamp parses s against the strict cell layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	return parseLayouts(s, cellLayouts)
}

// parseAnyTimestamp parses s against both the strict and the loose
// layout lists. Used only by type inference.
func parseAnyTimestamp(s string) (time.Time, bool) {
	if t, ok := parseLayouts(s, cellLayouts); ok {
		return t, true
	}
	return parseLayouts(s, inferLayouts)
}

func parseLayouts(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCell converts a raw cell string into a typed Value. Empty cells
// become null, numeric-parseable cells become numbers, strict datetime
// layouts become timestamps, everything else stays text.
func ParseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	if t, ok := ParseTimestamp(s); ok {
		return Timestamp(t)
	}
	return Text(raw)
}

// FromAny converts a JSON-decoded scalar into a Value, typing strings
// with the same strict layouts the loader uses so filter values compare
// against cells of the same kind.
func FromAny(x interface{}) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case float64:
		return Number(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case string:
		if t, ok := ParseTimestamp(v); ok {
			return Timestamp(t)
		}
		return Text(v)
	case bool:
		return Text(strconv.FormatBool(v))
	case time.Time:
		return Timestamp(v)
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}
