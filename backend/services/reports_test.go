package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() ReportTable {
	return ReportTable{
		Title:   "Estudiantes",
		Headers: []string{"ID", "Nombre", "Plan"},
		Rows: [][]string{
			{"1", "Ana Torres", "free"},
			{"2", "Luis Pérez", "individual"},
		},
	}
}

func TestReportCSV(t *testing.T) {
	data, err := sampleTable().CSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "ID,Nombre,Plan", lines[0])
	assert.Contains(t, lines[1], "Ana Torres")
}

func TestReportCSVEmpty(t *testing.T) {
	table := ReportTable{Title: "Vacío", Headers: []string{"A", "B"}}
	data, err := table.CSV()
	require.NoError(t, err)
	assert.Equal(t, "A,B", strings.TrimSpace(string(data)))
}

func TestReportXLSX(t *testing.T) {
	data, err := sampleTable().XLSX()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Estudiantes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nombre", "Plan"}, rows[0])
	assert.Equal(t, "Luis Pérez", rows[2][1])
}

func TestReportSummary(t *testing.T) {
	out := sampleTable().Summary(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "Estudiantes")
	assert.Contains(t, out, "Generado: 2026-08-29 10:00")
	assert.Contains(t, out, "Registros: 2")
	assert.Contains(t, out, "Ana Torres | free")
}
