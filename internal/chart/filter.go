package chart

import (
	"fmt"

	"sheetviz/internal/sheet"
)

// applyFilters evaluates the predicate chain over the sheet's rows and
// returns the surviving rows in source order. The input is never
// mutated. Predicates are AND-combined; a predicate whose field is
// missing from the sheet (or whose field/operator was not supplied) is
// skipped rather than raised, and cells that fail comparison - nulls
// included - simply do not match.
func applyFilters(s *sheet.Sheet, preds []Predicate) ([]sheet.Row, error) {
	keep := make([]bool, len(s.Rows))
	for i := range keep {
		keep[i] = true
	}

	for _, p := range preds {
		if p.Field == "" || p.Op == "" {
			continue
		}
		col, ok := s.ColumnIndex(p.Field)
		if !ok {
			continue
		}
		if !validOperators[p.Op] {
			return nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilter, p.Op)
		}

		for i, row := range s.Rows {
			if keep[i] && !matches(row[col], p) {
				keep[i] = false
			}
		}
	}

	var out []sheet.Row
	for i, row := range s.Rows {
		if keep[i] {
			out = append(out, row)
		}
	}
	return out, nil
}

func matches(cell sheet.Value, p Predicate) bool {
	switch p.Op {
	case OpEq:
		return cell.Equal(p.Value)
	case OpNeq:
		return !cell.Equal(p.Value)
	case OpIn:
		values := p.Values
		if values == nil {
			// Scalar fallback: wrap the single value into a one-element list.
			values = []sheet.Value{p.Value}
		}
		for _, v := range values {
			if cell.Equal(v) {
				return true
			}
		}
		return false
	case OpGte:
		c, ok := cell.Compare(p.Value)
		return ok && c >= 0
	case OpLte:
		c, ok := cell.Compare(p.Value)
		return ok && c <= 0
	default:
		return false
	}
}
