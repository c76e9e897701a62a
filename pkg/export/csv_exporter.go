package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Dataset defines tabular export content. Footer lines are rendered only by
// formats that have room for free text.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Footer  []string
}

// CSVExporter renders datasets in the attendance report CSV dialect: a bare
// header line, then rows whose fields are each wrapped in double quotes.
// Quote characters inside values are written through unescaped, matching the
// reports already in circulation.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	buf.WriteString(strings.Join(data.Headers, ","))
	buf.WriteByte('\n')
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(row[header])
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
