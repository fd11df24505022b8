package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/adapters/secondary/export"
	"github.com/lindseymertz/lily/internal/core/domain"
)

func exportRecord() domain.ServiceRequest {
	return domain.ServiceRequest{
		RequestID:        "SR-1001",
		AccountName:      `Harbor "Grill" & Co`,
		Vertical:         domain.VerticalRestaurant,
		SiteCount:        3,
		IssueCategory:    domain.CategoryHardware,
		RequestDate:      "2024-03-08",
		Status:           domain.StatusResolved,
		Urgency:          domain.SeverityHigh,
		Priority:         domain.SeverityMedium,
		TimeToRespond:    4.5,
		TimeToResolution: 40,
		ResolutionDate:   "2024-03-10",
		AccountHealth:    domain.HealthGood,
	}
}

func TestCSV(t *testing.T) {
	t.Run("header row carries the thirteen quoted labels", func(t *testing.T) {
		out := string(export.CSV(nil))

		lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
		require.Len(t, lines, 1)
		assert.Equal(t,
			`"Request ID","Account Name","Vertical","Site Count","Issue Category",`+
				`"Request Date","Status","Urgency","Priority","Time to Respond (hrs)",`+
				`"Time to Resolution (hrs)","Resolution Date","Account Health"`,
			lines[0])
	})

	t.Run("rows are fully quoted in column order", func(t *testing.T) {
		out := string(export.CSV([]domain.ServiceRequest{exportRecord()}))

		lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			`"SR-1001","Harbor ""Grill"" & Co","Restaurant","3","Hardware",`+
				`"2024-03-08","Resolved","High","Medium","4.5","40","2024-03-10","Good"`,
			lines[1])
	})

	t.Run("one row per record", func(t *testing.T) {
		out := string(export.CSV([]domain.ServiceRequest{exportRecord(), exportRecord()}))
		assert.Equal(t, 3, strings.Count(out, "\r\n"))
	})
}

func TestWorkbook(t *testing.T) {
	out := string(export.Workbook([]domain.ServiceRequest{exportRecord()}))

	t.Run("excel recognizes the document", func(t *testing.T) {
		assert.Contains(t, out, `<?mso-application progid="Excel.Sheet"?>`)
		assert.Contains(t, out, `<Worksheet ss:Name="Service Requests">`)
	})

	t.Run("header row is styled", func(t *testing.T) {
		assert.Contains(t, out, `<Cell ss:StyleID="header"><Data ss:Type="String">Request ID</Data></Cell>`)
		assert.Equal(t, 13, strings.Count(out, `ss:StyleID="header"`))
	})

	t.Run("numeric columns are typed Number", func(t *testing.T) {
		assert.Contains(t, out, `<Cell><Data ss:Type="Number">3</Data></Cell>`)
		assert.Contains(t, out, `<Cell><Data ss:Type="Number">4.5</Data></Cell>`)
		assert.Contains(t, out, `<Cell><Data ss:Type="Number">40</Data></Cell>`)
		assert.Equal(t, 3, strings.Count(out, `ss:Type="Number"`))
	})

	t.Run("text is xml-escaped", func(t *testing.T) {
		assert.Contains(t, out, "Harbor &#34;Grill&#34; &amp; Co")
	})
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "service-requests-2024-03-10.csv", export.Filename("service-requests", "csv", now))
	assert.Equal(t, "service-requests-2024-03-10.xls", export.Filename("service-requests", "xls", now))
}
