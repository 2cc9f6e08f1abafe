package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/export"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/optimizer"
)

const catalogPath = "../../internal/seed/testdata/prendas.csv"

func testParameters() *optimizer.Parameters {
	p := optimizer.DefaultParameters()
	p.PopulationSize = 12
	p.MaxGenerations = 8
	p.Seed = 11
	return p
}

func TestRunExportsWorkbook(t *testing.T) {
	output := filepath.Join(t.TempDir(), "resultado.xlsx")

	err := run(testParameters(), catalogPath, "", 4, "7", "Invierno", "Camel", "Casual=2,Clásico=1", output)
	require.NoError(t, err)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), export.WardrobeSheet(1))
	assert.Contains(t, f.GetSheetList(), export.SheetHistory)

	rows, err := f.GetRows(export.SheetHistory)
	require.NoError(t, err)
	assert.Len(t, rows, 1+8)
}

func TestRunWithoutOutput(t *testing.T) {
	require.NoError(t, run(testParameters(), catalogPath, "", 3, "", "", "", "", ""))
}

func TestRunRejectsBadInput(t *testing.T) {
	assert.Error(t, run(testParameters(), "", "", 3, "", "", "", "", ""))
	assert.Error(t, run(testParameters(), "no-existe.csv", "", 3, "", "", "", "", ""))
	assert.Error(t, run(testParameters(), catalogPath, "", 20, "", "", "", "", ""))
	assert.Error(t, run(testParameters(), catalogPath, "", 3, "99", "", "", "", ""))
	assert.Error(t, run(testParameters(), catalogPath, "", 3, "", "Monzón", "", "", ""))
	assert.Error(t, run(testParameters(), catalogPath, "", 3, "", "", "", "Gótico=1", ""))
}
