package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetviz/internal/sheet"
)

func salesSheet() *sheet.Sheet {
	return &sheet.Sheet{
		Name:    "sales",
		Columns: []string{"region", "amount", "status"},
		Rows: []sheet.Row{
			{sheet.Text("East"), sheet.Number(100), sheet.Text("open")},
			{sheet.Text("West"), sheet.Number(250), sheet.Text("closed")},
			{sheet.Text("East"), sheet.Number(50), sheet.Text("closed")},
			{sheet.Null(), sheet.Number(75), sheet.Text("open")},
			{sheet.Text("North"), sheet.Null(), sheet.Text("open")},
		},
	}
}

func TestApplyFiltersEq(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "region", Op: OpEq, Value: sheet.Text("East")},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestApplyFiltersNeqMatchesNulls(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "region", Op: OpNeq, Value: sheet.Text("East")},
	})
	require.NoError(t, err)
	// West, North and the null-region row all survive.
	assert.Len(t, rows, 3)
}

func TestApplyFiltersGteExcludesNulls(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "amount", Op: OpGte, Value: sheet.Number(75)},
	})
	require.NoError(t, err)
	// 100, 250 and 75 match; the null amount never does.
	assert.Len(t, rows, 3)
}

func TestApplyFiltersIn(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "region", Op: OpIn, Values: []sheet.Value{sheet.Text("East"), sheet.Text("West")}},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestApplyFiltersInScalarFallback(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "region", Op: OpIn, Value: sheet.Text("West")},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestApplyFiltersAndCombined(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "region", Op: OpEq, Value: sheet.Text("East")},
		{Field: "status", Op: OpEq, Value: sheet.Text("closed")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	f, _ := rows[0][1].Float()
	assert.Equal(t, 50.0, f)
}

func TestApplyFiltersSkipsUnknownFieldAndBlankOp(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "no_such_column", Op: OpEq, Value: sheet.Number(1)},
		{Field: "region", Op: "", Value: sheet.Text("East")},
		{Field: "", Op: OpEq, Value: sheet.Text("East")},
	})
	require.NoError(t, err)
	assert.Len(t, rows, len(s.Rows), "unevaluable predicates are skipped")
}

func TestApplyFiltersRejectsUnknownOperator(t *testing.T) {
	s := salesSheet()
	_, err := applyFilters(s, []Predicate{
		{Field: "region", Op: Operator("like"), Value: sheet.Text("E%")},
	})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestApplyFiltersPreservesSourceOrder(t *testing.T) {
	s := salesSheet()
	rows, err := applyFilters(s, []Predicate{
		{Field: "status", Op: OpEq, Value: sheet.Text("open")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "East", rows[0][0].Text())
	assert.True(t, rows[1][0].IsNull())
	assert.Equal(t, "North", rows[2][0].Text())
}
