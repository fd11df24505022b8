package export

import (
	"encoding/xml"
	"strings"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// Column indexes carrying numeric cell values (site count and the two
// duration columns).
var numericColumns = map[int]bool{3: true, 9: true, 10: true}

const workbookHeader = `<?xml version="1.0"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Styles>
  <Style ss:ID="header">
   <Font ss:Bold="1" ss:Color="#FFFFFF"/>
   <Interior ss:Color="#1F2937" ss:Pattern="Solid"/>
  </Style>
 </Styles>
 <Worksheet ss:Name="Service Requests">
  <Table>
`

const workbookFooter = `  </Table>
 </Worksheet>
</Workbook>
`

// Workbook encodes the records as a minimal SpreadsheetML (Excel 2003 XML)
// document: one styled header row, then one row per record with cells typed
// Number or String per column.
func Workbook(records []domain.ServiceRequest) []byte {
	var b strings.Builder
	b.WriteString(workbookHeader)

	b.WriteString("   <Row>\n")
	for _, h := range Headers {
		b.WriteString(`    <Cell ss:StyleID="header"><Data ss:Type="String">`)
		xmlEscape(&b, h)
		b.WriteString("</Data></Cell>\n")
	}
	b.WriteString("   </Row>\n")

	for _, r := range records {
		b.WriteString("   <Row>\n")
		for i, f := range fields(r) {
			cellType := "String"
			if numericColumns[i] {
				cellType = "Number"
			}
			b.WriteString(`    <Cell><Data ss:Type="`)
			b.WriteString(cellType)
			b.WriteString(`">`)
			xmlEscape(&b, f)
			b.WriteString("</Data></Cell>\n")
		}
		b.WriteString("   </Row>\n")
	}

	b.WriteString(workbookFooter)
	return []byte(b.String())
}

func xmlEscape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
