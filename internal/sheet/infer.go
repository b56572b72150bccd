package sheet

const (
	// inferSampleSize bounds how many non-null values the datetime
	// heuristic examines per column.
	inferSampleSize = 20

	// datetimeThreshold is the fraction of the sample that must parse
	// as a date for the column to classify as datetime. Both constants
	// are heuristic and tunable, kept for behavioral compatibility.
	datetimeThreshold = 0.6
)

// InferColumnType classifies a column's sampled values as number,
// category or datetime. First match wins:
//
//  1. all values null            -> category
//  2. every non-null is a number -> number
//  3. every non-null is a time   -> datetime
//  4. >= 60% of the first 20 non-null values parse as dates -> datetime
//  5. everything else            -> category
//
// The result is deterministic for a fixed sample. Ambiguous columns
// never error; they fall through to category.
func InferColumnType(values []Value) ColumnType {
	var nonNull []Value
	for _, v := range values {
		if !v.IsNull() {
			nonNull = append(nonNull, v)
		}
	}
	if len(nonNull) == 0 {
		return TypeCategory
	}

	allNumber, allTime := true, true
	for _, v := range nonNull {
		if v.Kind() != KindNumber {
			allNumber = false
		}
		if v.Kind() != KindTime {
			allTime = false
		}
	}
	if allNumber {
		return TypeNumber
	}
	if allTime {
		return TypeDatetime
	}

	sample := nonNull
	if len(sample) > inferSampleSize {
		sample = sample[:inferSampleSize]
	}
	parsed := 0
	for _, v := range sample {
		if looksLikeDate(v) {
			parsed++
		}
	}
	if parsed > 0 && float64(parsed)/float64(len(sample)) >= datetimeThreshold {
		return TypeDatetime
	}

	return TypeCategory
}

func looksLikeDate(v Value) bool {
	switch v.Kind() {
	case KindTime:
		return true
	case KindText:
		_, ok := parseAnyTimestamp(v.Text())
		return ok
	default:
		return false
	}
}
