package sheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		want   ColumnType
	}{
		{
			name:   "empty column",
			values: nil,
			want:   TypeCategory,
		},
		{
			name:   "all null",
			values: []Value{Null(), Null(), Null()},
			want:   TypeCategory,
		},
		{
			name:   "all numbers",
			values: []Value{Number(1), Number(2.5), Number(-3)},
			want:   TypeNumber,
		},
		{
			name:   "numbers with nulls",
			values: []Value{Number(1), Null(), Number(2)},
			want:   TypeNumber,
		},
		{
			name:   "single number",
			values: []Value{Number(42)},
			want:   TypeNumber,
		},
		{
			name:   "all timestamps",
			values: []Value{ParseCell("2024-01-01"), ParseCell("2024-01-02")},
			want:   TypeDatetime,
		},
		{
			name:   "numbers mixed with text",
			values: []Value{Number(1), Text("n/a"), Number(2)},
			want:   TypeCategory,
		},
		{
			name:   "plain text",
			values: []Value{Text("red"), Text("green"), Text("blue")},
			want:   TypeCategory,
		},
		{
			name: "loose date text above threshold",
			values: []Value{
				Text("Jan 2, 2024"), Text("Jan 3, 2024"), Text("Jan 4, 2024"),
				Text("Jan 5, 2024"), Text("Jan 6, 2024"), Text("Jan 7, 2024"),
				Text("pending"), Text("pending"), Text("pending"), Text("pending"),
			},
			want: TypeDatetime, // 6/10 parse
		},
		{
			name: "loose date text below threshold",
			values: []Value{
				Text("Jan 2, 2024"), Text("Jan 3, 2024"), Text("Jan 4, 2024"),
				Text("Jan 5, 2024"), Text("Jan 6, 2024"),
				Text("pending"), Text("pending"), Text("pending"),
				Text("pending"), Text("pending"),
			},
			want: TypeCategory, // 5/10 parse
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumnType(tt.values))
		})
	}
}

func TestInferColumnTypeSampleBound(t *testing.T) {
	// The first 20 non-null values are dates, everything after is not;
	// only the sample window decides.
	var values []Value
	for i := 0; i < 20; i++ {
		values = append(values, Text(fmt.Sprintf("2024-01-%02d", i+1)))
	}
	for i := 0; i < 80; i++ {
		values = append(values, Text("n/a"))
	}

	assert.Equal(t, TypeDatetime, InferColumnType(values))
}

func TestInferColumnTypeDeterministic(t *testing.T) {
	values := []Value{Text("2024-01-01"), Text("maybe"), Number(1), Null()}
	first := InferColumnType(values)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, InferColumnType(values))
	}
}
