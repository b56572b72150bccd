package sheet

// PreviewResult is the bounded structural preview of one sheet: column
// descriptors with inferred types, a capped sample of rows as ordered
// value arrays, the full row count and whether the sample was cut.
type PreviewResult struct {
	Name       string
	Columns    []Column
	SampleRows [][]interface{}
	TotalRows  int
	Truncated  bool
}

// Preview loads every sheet of the source and builds its structure
// preview. Types are inferred over the sample only, not the full sheet;
// maxRows is caller-bounded. Timestamp cells export as ISO-8601 strings.
func Preview(path string, maxRows int) ([]PreviewResult, error) {
	sheets, err := Load(path)
	if err != nil {
		return nil, err
	}

	results := make([]PreviewResult, 0, len(sheets))
	for _, s := range sheets {
		results = append(results, previewSheet(s, maxRows))
	}
	return results, nil
}

func previewSheet(s *Sheet, maxRows int) PreviewResult {
	total := len(s.Rows)
	sample := s.Rows
	if total > maxRows {
		sample = s.Rows[:maxRows]
	}

	cols := make([]Column, len(s.Columns))
	for i, name := range s.Columns {
		cols[i] = Column{
			Name: name,
			Type: InferColumnType(ColumnValues(sample, i)),
		}
	}

	rows := make([][]interface{}, len(sample))
	for j, r := range sample {
		out := make([]interface{}, len(r))
		for i, v := range r {
			out[i] = v.Export()
		}
		rows[j] = out
	}

	return PreviewResult{
		Name:       s.Name,
		Columns:    cols,
		SampleRows: rows,
		TotalRows:  total,
		Truncated:  total > maxRows,
	}
}
