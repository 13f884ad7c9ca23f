package audit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/new-organization97/ghadmin/internal/access"
)

var sheetHeader = []string{
	"Timestamp", "Action", "Organization", "Team", "Repository",
	"User", "Permission", "Access Level Description", "Status", "Notes",
}

// Zero-based column indices into sheetHeader.
const (
	permissionColumn = 6 // G
	statusColumn     = 8 // I
)

// Style is cell-level formatting applied by the sheet backend.
type Style struct {
	Background *access.Color
	Foreground *access.Color
	Bold       bool
}

// worksheetAPI is the slice of the Sheets API the sink depends on. Tests
// substitute a fake; production uses googleWorksheet.
type worksheetAPI interface {
	// Ensure locates the worksheet, creating it when absent.
	Ensure(ctx context.Context) error
	// Header returns the first row, empty when the sheet has no data.
	Header(ctx context.Context) ([]string, error)
	// Reset clears the worksheet and writes a formatted header row.
	Reset(ctx context.Context, header []string) error
	// AppendRow appends one row and returns its 1-based row index.
	AppendRow(ctx context.Context, row []interface{}) (int64, error)
	// FormatCell applies formatting to a single cell, 1-based row.
	FormatCell(ctx context.Context, row int64, column int64, style Style) error
}

// Sheet appends records to a Google Sheets worksheet. The worksheet and its
// header row are provisioned on first use; a stale header (A1 not
// "Timestamp") is cleared and rewritten. Cell coloring is best-effort and
// never fails the append.
type Sheet struct {
	api   worksheetAPI
	ready bool
}

// NewSheet builds a sheet sink from service-account credentials JSON.
func NewSheet(ctx context.Context, credentialsJSON []byte, spreadsheetID string, worksheet string) (*Sheet, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("credentials JSON is required")
	}
	if spreadsheetID == "" || worksheet == "" {
		return nil, fmt.Errorf("spreadsheet id and worksheet are required")
	}

	jwt, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing sheets credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwt.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &Sheet{api: &googleWorksheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		title:         worksheet,
	}}, nil
}

// Name identifies the sink in warnings.
func (s *Sheet) Name() string { return "google-sheets" }

// Append provisions the worksheet if needed, appends the record, and colors
// the status and permission cells.
func (s *Sheet) Append(ctx context.Context, rec Record) error {
	if !s.ready {
		if err := s.api.Ensure(ctx); err != nil {
			return fmt.Errorf("locating worksheet: %w", err)
		}
		header, err := s.api.Header(ctx)
		if err != nil {
			return fmt.Errorf("reading worksheet header: %w", err)
		}
		if len(header) == 0 || header[0] != "Timestamp" {
			if err := s.api.Reset(ctx, sheetHeader); err != nil {
				return fmt.Errorf("rewriting worksheet header: %w", err)
			}
		}
		s.ready = true
	}

	row := []interface{}{
		rec.TimeString(),
		rec.Action,
		rec.Organization,
		rec.Team,
		rec.Repository,
		rec.User,
		rec.Permission,
		rec.AccessLevel,
		string(rec.Status),
		rec.DefaultNotes(),
	}
	rowIndex, err := s.api.AppendRow(ctx, row)
	if err != nil {
		return fmt.Errorf("appending worksheet row: %w", err)
	}

	s.colorCells(ctx, rowIndex, rec)
	return nil
}

// colorCells applies outcome and permission coloring. Failures are logged at
// debug level only; the record is already durable.
func (s *Sheet) colorCells(ctx context.Context, row int64, rec Record) {
	var style *Style
	switch rec.Status {
	case StatusSuccess:
		style = &Style{
			Background: &access.Color{Red: 0.8, Green: 1.0, Blue: 0.8},
			Foreground: &access.Color{Red: 0.0, Green: 0.5, Blue: 0.0},
		}
	case StatusFailed:
		style = &Style{
			Background: &access.Color{Red: 1.0, Green: 0.8, Blue: 0.8},
			Foreground: &access.Color{Red: 0.8, Green: 0.0, Blue: 0.0},
		}
	}
	if style != nil {
		if err := s.api.FormatCell(ctx, row, statusColumn, *style); err != nil {
			logrus.WithError(err).Debug("status cell formatting failed")
		}
	}

	if rec.Permission != "" {
		if color, ok := access.CellColor(rec.Permission); ok {
			if err := s.api.FormatCell(ctx, row, permissionColumn, Style{Background: &color}); err != nil {
				logrus.WithError(err).Debug("permission cell formatting failed")
			}
		}
	}
}

// googleWorksheet implements worksheetAPI over the Sheets API.
type googleWorksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
	sheetID       int64
	located       bool
}

func (g *googleWorksheet) Ensure(ctx context.Context) error {
	if g.located {
		return nil
	}
	ss, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == g.title {
			g.sheetID = sh.Properties.SheetId
			g.located = true
			return nil
		}
	}

	resp, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title:          g.title,
					GridProperties: &sheets.GridProperties{RowCount: 1000, ColumnCount: 20},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return fmt.Errorf("add sheet reply missing properties")
	}
	g.sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	g.located = true
	return nil
}

func (g *googleWorksheet) Header(ctx context.Context) ([]string, error) {
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.title+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	header := make([]string, 0, len(vr.Values[0]))
	for _, cell := range vr.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}
	return header, nil
}

func (g *googleWorksheet) Reset(ctx context.Context, header []string) error {
	if _, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, g.title, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return err
	}

	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, g.title+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return err
	}

	// Bold header on a gray background.
	_, err = g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          g.sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(header)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.8, Green: 0.8, Blue: 0.8},
						TextFormat:      &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}).Context(ctx).Do()
	return err
}

func (g *googleWorksheet) AppendRow(ctx context.Context, row []interface{}) (int64, error) {
	resp, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, g.title+"!A:J", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append response missing updates")
	}
	return rowFromRange(resp.Updates.UpdatedRange)
}

func (g *googleWorksheet) FormatCell(ctx context.Context, row int64, column int64, style Style) error {
	format := &sheets.CellFormat{}
	if style.Background != nil {
		format.BackgroundColor = &sheets.Color{Red: style.Background.Red, Green: style.Background.Green, Blue: style.Background.Blue}
	}
	if style.Foreground != nil || style.Bold {
		format.TextFormat = &sheets.TextFormat{Bold: style.Bold}
		if style.Foreground != nil {
			format.TextFormat.ForegroundColor = &sheets.Color{Red: style.Foreground.Red, Green: style.Foreground.Green, Blue: style.Foreground.Blue}
		}
	}

	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          g.sheetID,
					StartRowIndex:    row - 1,
					EndRowIndex:      row,
					StartColumnIndex: column,
					EndColumnIndex:   column + 1,
				},
				Cell: &sheets.CellData{UserEnteredFormat: format},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}).Context(ctx).Do()
	return err
}

// rowFromRange extracts the row number from an A1 range like "Log!A7:J7".
func rowFromRange(updatedRange string) (int64, error) {
	ref := updatedRange
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		ref = ref[:i]
	}
	digits := strings.TrimLeftFunc(ref, unicode.IsLetter)
	row, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || row < 1 {
		return 0, fmt.Errorf("unparsable updated range %q", updatedRange)
	}
	return row, nil
}
