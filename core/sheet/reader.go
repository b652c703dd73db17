package sheet

import (
	"fmt"
	"strings"

	"dcv-manager/core/reconcile"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column labels accepted for the domain and scope columns, lowercased.
var (
	domainHeaders = []string{"domain", "hostname", "domainname", "domain name"}
	scopeHeaders  = []string{"validationscope", "scope", "validation scope"}
)

// ReadItems loads work items from the first sheet of an xlsx workbook.
// The first row is treated as the header. Rows with a blank domain are
// skipped; identifiers are trimmed and lowercased, scopes uppercased with
// DOMAIN as the default.
func ReadItems(path string, log *zap.Logger) ([]reconcile.Item, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s is empty", path)
	}

	header := rows[0]
	domainCol := findColumn(header, domainHeaders)
	if domainCol < 0 {
		domainCol = 0
		log.Warn("could not identify a domain column, using the first column",
			zap.String("header", columnLabel(header, 0)),
		)
	}

	scopeCol := findColumn(header, scopeHeaders)
	if scopeCol < 0 {
		log.Warn("no scope column found, defaulting all rows to DOMAIN")
	}

	items := make([]reconcile.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		domain := cell(row, domainCol)
		if strings.TrimSpace(domain) == "" {
			continue
		}

		scope := ""
		if scopeCol >= 0 {
			scope = cell(row, scopeCol)
		}

		item := reconcile.NewItem(domain, scope)
		if !item.Scope.IsValid() {
			log.Warn("unrecognized validation scope, passing through to the API",
				zap.String("domain", item.Domain),
				zap.String("scope", string(item.Scope)),
			)
		}
		items = append(items, item)
	}

	log.Info("loaded work items from workbook",
		zap.String("path", path),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// findColumn returns the index of the first header cell whose trimmed,
// lowercased value is in wanted, or -1.
func findColumn(header []string, wanted []string) int {
	for i, h := range header {
		norm := strings.ToLower(strings.TrimSpace(h))
		for _, w := range wanted {
			if norm == w {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func columnLabel(header []string, col int) string {
	if col < len(header) {
		return header[col]
	}
	return ""
}
