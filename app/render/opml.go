package render

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/presswatch/presswatch/app/digest"
	"github.com/presswatch/presswatch/app/roster"
)

// OPML renders the digest as an OPML 2.0 outline: one outline per client in
// roster order, one child outline per item. An empty digest produces a
// single placeholder outline so importers never see an empty body.
func OPML(d *digest.Digest, entities []roster.Entity, lookbackHours float64) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n<opml version=\"2.0\">\n  <head>\n")
	writeElement(&buf, "title", Subject(d.GeneratedAt), 4)
	writeElement(&buf, "dateCreated", d.GeneratedAt.Format(time.RFC3339), 4)
	buf.WriteString("  </head>\n  <body>\n")

	total := 0
	for _, entity := range entities {
		items := d.ItemsByClient[entity.Name]
		if len(items) == 0 {
			continue
		}

		writeOutline(&buf, 4, [][2]string{
			{"text", entity.Name},
			{"title", entity.Name},
		}, false)

		for _, item := range items {
			total++
			writeOutline(&buf, 6, [][2]string{
				{"text", item.Title},
				{"title", item.Title},
				{"type", "link"},
				{"url", item.URL},
				{"htmlUrl", item.URL},
				{"created", item.PublishedAt.Format(time.RFC3339)},
				{"sentiment", item.Sentiment},
				{"source", item.Source},
			}, true)
		}

		buf.WriteString("    </outline>\n")
	}

	if total == 0 {
		placeholder := noCoverageText(lookbackHours)
		writeOutline(&buf, 4, [][2]string{
			{"text", placeholder},
			{"title", placeholder},
		}, true)
	}

	buf.WriteString("  </body>\n</opml>\n")

	return buf.String()
}

func writeOutline(buf *bytes.Buffer, indent int, attrs [][2]string, selfClose bool) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<outline")
	for _, attr := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr[0])
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(attr[1]))
		buf.WriteString(`"`)
	}
	if selfClose {
		buf.WriteString(" />\n")
	} else {
		buf.WriteString(">\n")
	}
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
