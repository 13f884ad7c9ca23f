package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Sheet1"

var workbookHeader = []string{
	"Timestamp", "Action", "Organization", "Team", "Repository",
	"User", "Permission", "New Repo Name", "Private Repo",
}

// Workbook appends records to a local XLSX file. The file is created with a
// bold header row on first use. Every append is a full read-modify-write of
// the workbook with no locking; concurrent invocations are not safe.
type Workbook struct {
	path string
}

// NewWorkbook creates a workbook sink at the given path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// Name identifies the sink in warnings.
func (w *Workbook) Name() string { return "workbook" }

// Append writes one row after the last occupied row and saves the file.
func (w *Workbook) Append(ctx context.Context, rec Record) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	if err != nil {
		return fmt.Errorf("reading workbook rows: %w", err)
	}

	row := []interface{}{
		rec.TimeString(),
		rec.Action,
		rec.Organization,
		rec.Team,
		rec.Repository,
		rec.User,
		rec.Permission,
		rec.RepoName,
		strconv.FormatBool(rec.RepoPrivate),
	}
	cell := fmt.Sprintf("A%d", len(rows)+1)
	if err := f.SetSheetRow(workbookSheet, cell, &row); err != nil {
		return fmt.Errorf("writing workbook row: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// open loads the workbook, creating it with a header row when absent.
func (w *Workbook) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err == nil {
		f, err := excelize.OpenFile(w.path)
		if err != nil {
			return nil, fmt.Errorf("opening workbook %s: %w", w.path, err)
		}
		return f, nil
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	f := excelize.NewFile()
	header := make([]interface{}, len(workbookHeader))
	for i, h := range workbookHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing workbook header: %w", err)
	}

	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(workbookHeader), 1)
		_ = f.SetCellStyle(workbookSheet, "A1", lastCol, styleID)
	}

	return f, nil
}
