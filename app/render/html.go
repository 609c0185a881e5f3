package render

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/presswatch/presswatch/app/digest"
	"github.com/presswatch/presswatch/app/roster"
)

const (
	reportTitleLayout = "Daily PR Coverage — Monday, 02 January 2006"
	itemTimeLayout    = "2006-01-02 15:04"
)

// Subject returns the report title used for the email subject and the
// document headings.
func Subject(generatedAt time.Time) string {
	return generatedAt.Format(reportTitleLayout)
}

// HTML renders the email body. Clients appear in roster order; every
// user-controlled string is escaped before it reaches the markup.
func HTML(d *digest.Digest, entities []roster.Entity, lookbackHours float64) string {
	var buf bytes.Buffer

	buf.WriteString("<h2>")
	buf.WriteString(html.EscapeString(Subject(d.GeneratedAt)))
	buf.WriteString("</h2>\n")

	for _, entity := range entities {
		items := d.ItemsByClient[entity.Name]
		if len(items) == 0 {
			continue
		}

		buf.WriteString("<h3>")
		buf.WriteString(html.EscapeString(entity.Name))
		buf.WriteString("</h3>\n<ul>\n")
		for _, item := range items {
			writeItem(&buf, item)
		}
		buf.WriteString("</ul>\n")
	}

	if d.IsEmpty() {
		buf.WriteString("<p>")
		buf.WriteString(html.EscapeString(noCoverageText(lookbackHours)))
		buf.WriteString("</p>\n")
	}

	return buf.String()
}

func writeItem(buf *bytes.Buffer, item digest.Item) {
	buf.WriteString("<li><strong>")
	buf.WriteString(html.EscapeString(item.Source))
	buf.WriteString("</strong> · <em>")
	buf.WriteString(html.EscapeString(item.PublishedAt.Format(itemTimeLayout)))
	buf.WriteString("</em> · <span>")
	buf.WriteString(html.EscapeString(item.Sentiment))
	buf.WriteString("</span><br>\n<a href=\"")
	buf.WriteString(html.EscapeString(item.URL))
	buf.WriteString("\">")
	buf.WriteString(html.EscapeString(item.Title))
	buf.WriteString("</a>")
	if item.Excerpt != "" {
		buf.WriteString("<br>\n<small>")
		buf.WriteString(html.EscapeString(item.Excerpt))
		buf.WriteString("</small>")
	}
	buf.WriteString("</li>\n")
}

func noCoverageText(lookbackHours float64) string {
	return fmt.Sprintf("No coverage found in the last %g hours.", lookbackHours)
}
