package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Transcript stu1",
		Headers: []string{"Code", "Total"},
		Rows: []map[string]string{
			{"Code": "MA101", "Total": "78.60"},
			{"Code": "PH101", "Total": "75.80"},
		},
		Footer: []string{"CGPA: 8.14"},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Code", "Total"}, records[0])
	assert.Equal(t, []string{"MA101", "78.60"}, records[1])
	assert.Equal(t, []string{"CGPA: 8.14"}, records[3])
}

func TestExportersRequireHeaders(t *testing.T) {
	for _, r := range []Renderer{NewCSVExporter(), NewPDFExporter(), NewXLSXExporter("")} {
		_, err := r.Render(Dataset{})
		assert.Error(t, err, r.Extension())
	}
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter("Transcript").Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Transcript", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Code", header)
	total, err := f.GetCellValue("Transcript", "B2")
	require.NoError(t, err)
	assert.Equal(t, "78.60", total)
	footer, err := f.GetCellValue("Transcript", "A5")
	require.NoError(t, err)
	assert.Equal(t, "CGPA: 8.14", footer)
}
