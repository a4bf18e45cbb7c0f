package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/document.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html.tmpl").
		Funcs(template.FuncMap{"span": spanCSS}).
		ParseFS(templateFS, "templates/document.html.tmpl"),
)

type htmlView struct {
	Doc      Document
	CSS      template.CSS
	Viewport template.CSS
	Canvas   template.CSS
}

// WriteHTML writes doc as a standalone HTML page. The canvas keeps its natural
// size and is scaled by the document's transform inside a viewport sized to
// the scaled canvas. Hyperlinks with unsafe schemes are neutralised by
// html/template.
func WriteHTML(w io.Writer, doc Document) error {
	scaled := doc.ScaledSize()
	view := htmlView{
		Doc: doc,
		CSS: stylesheet(doc.Typography),
		Viewport: template.CSS(fmt.Sprintf(
			"width:%.2fpx;height:%.2fpx;overflow:hidden",
			scaled.Width, scaled.Height,
		)),
		Canvas: template.CSS(fmt.Sprintf(
			"width:%.2fpx;min-height:%.2fpx;transform:scale(%.4f);transform-origin:%s",
			doc.Page.Width, doc.Page.Height, doc.Transform.Factor, doc.Transform.Origin,
		)),
	}
	return documentTemplate.Execute(w, view)
}

func spanCSS(span int) template.CSS {
	return template.CSS(fmt.Sprintf("grid-column:span %d", span))
}

func stylesheet(t Typography) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "body{margin:0}")
	fmt.Fprintf(&b, ".canvas{box-sizing:border-box;padding:32px;background:#fff;font-family:%s;font-size:%.1fpx;color:#374151}",
		cssFontFamily(t.FontFamily), t.BodySize)
	fmt.Fprintf(&b, ".header{margin-bottom:24px}.align-center{text-align:center}.align-right{text-align:right}")
	fmt.Fprintf(&b, ".name{margin:0;font-size:%.1fpx;color:#%s}.upper{text-transform:uppercase}",
		t.NameSize, cssColor(t.NameColor, "111111"))
	fmt.Fprintf(&b, ".designation{margin:4px 0;font-size:%.1fpx}", t.DesignationSize)
	fmt.Fprintf(&b, ".body{display:grid;grid-template-columns:repeat(12,1fr);column-gap:24px}")
	heading := ""
	if t.UppercaseHeadings {
		heading = "text-transform:uppercase;"
	}
	fmt.Fprintf(&b, ".section h2{%sfont-size:%.1fpx;color:#%s;border-bottom:1px solid #d1d5db;margin:16px 0 8px}",
		heading, t.HeadingSize, cssColor(t.HeadingColor, "1F2937"))
	fmt.Fprintf(&b, ".entry{margin-bottom:12px}.entry-head{display:flex;justify-content:space-between}")
	fmt.Fprintf(&b, ".entry h3{margin:0;font-size:%.1fpx}.dates{color:#6b7280}", t.BodySize+1)
	fmt.Fprintf(&b, "ul{margin:4px 0;padding-left:18px}.contact,.items{list-style:none;padding-left:0}")
	return template.CSS(b.String())
}

// cssColor accepts a hex color without '#'.
func cssColor(value, fallback string) string {
	if n := len(value); n != 3 && n != 6 {
		return fallback
	}
	for _, r := range value {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fallback
		}
	}
	return value
}

func cssFontFamily(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '"':
			return -1
		}
		return r
	}, value)
	if strings.TrimSpace(cleaned) == "" {
		return "sans-serif"
	}
	return cleaned
}
