package sheet

import (
	"fmt"
	"strconv"

	"dcv-manager/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// TokenRow is one output row of the request command: the DNS TXT challenge
// recorded for a domain.
type TokenRow struct {
	Domain string
	Name   string
	Token  string
}

// WriteResults persists a reconciliation ledger to an xlsx workbook, one row
// per item. The API's own title/detail text is written verbatim so the
// workbook is the sole error-reporting channel of a run.
func WriteResults(path string, results []reconcile.Result) error {
	header := []any{"Domain", "Scope", "Result", "Status Code", "Error Title", "Error Detail"}
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		status := ""
		if r.StatusCode != 0 {
			status = strconv.Itoa(r.StatusCode)
		}
		rows = append(rows, []any{
			r.Item.Domain,
			string(r.Item.Scope),
			string(r.Outcome),
			status,
			r.Title,
			r.Detail,
		})
	}
	return write(path, header, rows)
}

// WriteTokens persists the challenge listing of the request command.
func WriteTokens(path string, tokens []TokenRow) error {
	header := []any{"Domain", "Name", "Token"}
	rows := make([][]any, 0, len(tokens))
	for _, tr := range tokens {
		rows = append(rows, []any{tr.Domain, tr.Name, tr.Token})
	}
	return write(path, header, rows)
}

func write(path string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		r := row
		if err := f.SetSheetRow(sheetName, start, &r); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
