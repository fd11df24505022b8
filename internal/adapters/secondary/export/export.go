// Package export serializes the filtered record collection for download.
// Both encoders emit the same 13 columns in a fixed order.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// Headers are the fixed column labels, in export order.
var Headers = []string{
	"Request ID",
	"Account Name",
	"Vertical",
	"Site Count",
	"Issue Category",
	"Request Date",
	"Status",
	"Urgency",
	"Priority",
	"Time to Respond (hrs)",
	"Time to Resolution (hrs)",
	"Resolution Date",
	"Account Health",
}

func fields(r domain.ServiceRequest) []string {
	return []string{
		r.RequestID,
		r.AccountName,
		string(r.Vertical),
		strconv.Itoa(r.SiteCount),
		string(r.IssueCategory),
		r.RequestDate,
		string(r.Status),
		string(r.Urgency),
		string(r.Priority),
		formatHours(r.TimeToRespond),
		formatHours(r.TimeToResolution),
		r.ResolutionDate,
		string(r.AccountHealth),
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// Filename suggests a download name with the current date appended.
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, now.Format(domain.DateLayout), ext)
}

// CSV encodes the records as delimited text: one header row, then one row
// per record with every field double-quoted.
func CSV(records []domain.ServiceRequest) []byte {
	var b strings.Builder
	writeQuotedRow(&b, Headers)
	for _, r := range records {
		writeQuotedRow(&b, fields(r))
	}
	return []byte(b.String())
}

func writeQuotedRow(b *strings.Builder, row []string) {
	for i, f := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
