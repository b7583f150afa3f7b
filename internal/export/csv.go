// Package export serializes the full record set for download. Exports keep
// the set's current order and ignore the table's filter/sort state.
package export

import (
	"errors"
	"fmt"
	"strings"

	"spendview/internal/core"
)

// ErrNoReceipts is returned when an export is attempted over an empty set.
var ErrNoReceipts = errors.New("no receipts to export")

// CSVHeader is the fixed header row of every CSV export.
const CSVHeader = "Date,Vendor,Amount,Category,File,Confidence"

// CSV renders the record set as CSV text: one row per record, vendor and
// file name double-quoted to tolerate embedded delimiters, amount and
// confidence at exactly two decimal places.
func CSV(recs []core.Receipt) (string, error) {
	if len(recs) == 0 {
		return "", ErrNoReceipts
	}

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, r := range recs {
		b.WriteString(r.Date.String())
		b.WriteByte(',')
		b.WriteString(quote(r.Vendor))
		b.WriteByte(',')
		b.WriteString(r.Amount.Decimal())
		b.WriteByte(',')
		b.WriteString(string(r.Category))
		b.WriteByte(',')
		b.WriteString(quote(r.FileName))
		b.WriteByte(',')
		b.WriteString(fmt.Sprintf("%.2f", r.Confidence))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// quote always wraps the field in double quotes, doubling any embedded ones.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
