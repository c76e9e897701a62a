package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterQuotesFieldsWithoutEscaping(t *testing.T) {
	data := Dataset{
		Headers: []string{"Student ID", "Name"},
		Rows: []map[string]string{
			{"Student ID": "S1", "Name": `Ann "Nan" Lee`},
			{"Student ID": "S2"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Student ID,Name\n\"S1\",\"Ann \"Nan\" Lee\"\n\"S2\",\"\"\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Student ID", "Status"},
		Rows:    []map[string]string{{"Student ID": "S1", "Status": "Present"}},
		Footer:  []string{"Attendance: 100%"},
	}

	out, err := NewPDFExporter().Render(data, "Attendance Report")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
