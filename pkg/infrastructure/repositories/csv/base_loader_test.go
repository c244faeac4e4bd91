package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBaseRows(t *testing.T) {
	path := writeCSV(t, `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,C1,47600,0.8,10,16,0,1
A2,C1,12000,0.75,4,16,24,1.5
`)

	rows, err := NewLoader().LoadBaseRows(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, entities.ArticleID("A1"), rows[0].Article)
	require.Equal(t, entities.CenterID("C1"), rows[0].Center)
	require.Equal(t, 47600.0, rows[0].AnnualVolume)
	require.Equal(t, 0.8, rows[0].OEE)
	require.Equal(t, 10.0, rows[0].PiecesPerMinute)
	require.Equal(t, 16, rows[0].ShiftHours)
	require.Equal(t, 24.0, rows[1].SetupHours)
	require.Equal(t, 1.5, rows[1].PersonnelRatio)
}

func TestLoadBaseRows_NormalizesFloatIdentifiers(t *testing.T) {
	path := writeCSV(t, `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
1234.0,770.0,1000,0.8,10,16,0,1
`)

	rows, err := NewLoader().LoadBaseRows(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, entities.ArticleID("1234"), rows[0].Article)
	require.Equal(t, entities.CenterID("770"), rows[0].Center)
}

func TestLoadBaseRows_SkipsRowsWithoutCenter(t *testing.T) {
	path := writeCSV(t, `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,nan,1000,0.8,10,16,0,1
A2,,1000,0.8,10,16,0,1
A3,C1,1000,0.8,10,16,0,1
`)

	rows, err := NewLoader().LoadBaseRows(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, entities.ArticleID("A3"), rows[0].Article)
}

func TestLoadBaseRows_DefaultsBlankCells(t *testing.T) {
	path := writeCSV(t, `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,C1,1000,0.8,10,,nan,
`)

	rows, err := NewLoader().LoadBaseRows(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, entities.DefaultGlobalShiftHours, rows[0].ShiftHours)
	require.Equal(t, 0.0, rows[0].SetupHours)
	require.Equal(t, 1.0, rows[0].PersonnelRatio)
}

func TestLoadBaseRows_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError string
	}{
		{
			name:        "header mismatch",
			content:     "article,center\nA1,C1\n",
			expectError: "header mismatch",
		},
		{
			name:        "missing data rows",
			content:     "article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio\n",
			expectError: "at least one data row",
		},
		{
			name: "wrong column count",
			content: `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,C1,1000,0.8
`,
			expectError: "wrong number of fields",
		},
		{
			name: "invalid shift hours",
			content: `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,C1,1000,0.8,10,12,0,1
`,
			expectError: "invalid shift_hours",
		},
		{
			name: "non numeric volume",
			content: `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
A1,C1,lots,0.8,10,16,0,1
`,
			expectError: "invalid annual_volume",
		},
		{
			name: "empty article id",
			content: `article_id,center_id,annual_volume,oee,pieces_per_minute,shift_hours,setup_hours,personnel_ratio
nan,C1,1000,0.8,10,16,0,1
`,
			expectError: "article id cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := NewLoader().LoadBaseRows(context.Background(), path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestLoadBaseRows_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadBaseRows(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open base dataset")
}
