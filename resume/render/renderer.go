// Package render lays out ResumeData onto a fixed-size canvas according to
// a Style and fits the canvas into a container width.
//
// Rendering never fails: absent or malformed fields are omitted rather than
// reported. Renders are pure functions of their inputs and safe to run
// concurrently.
package render

import (
	"strconv"
	"strings"

	"resume-builder/resume/fit"
	"resume-builder/resume/format"
	"resume-builder/resume/model"
	"resume-builder/resume/visibility"
)

// Request is the input of a render pass. ContainerWidth <= 0 renders unscaled.
type Request struct {
	Data           model.ResumeData
	ContainerWidth float64
}

// Renderer renders documents in one style.
type Renderer struct {
	style Style
}

// New returns a Renderer for style. Missing style options take their defaults.
func New(style Style) *Renderer {
	style.applyDefaults()
	return &Renderer{style: style}
}

// Style returns the renderer's style descriptor.
func (r *Renderer) Style() Style { return r.style }

// Render lays out req.Data and computes the fit transform for req.ContainerWidth.
func (r *Renderer) Render(req Request) Document {
	s := r.style
	data := req.Data

	doc := Document{
		Style:      s.Name,
		Layout:     s.Layout,
		Page:       s.Page.Size(),
		Typography: s.Typography,
		Header:     r.header(data),
	}

	switch s.Layout {
	case SingleColumn:
		doc.Columns = []Column{
			{Role: RoleMain, Span: gridColumns, Sections: r.sections(s.Main, data)},
		}
	default:
		doc.Columns = []Column{
			{Role: RoleSidebar, Span: s.SidebarSpan, Sections: r.sections(s.Sidebar, data)},
			{Role: RoleMain, Span: gridColumns - s.SidebarSpan, Sections: r.sections(s.Main, data)},
		}
	}

	// The canvas is laid out before it is measured, so the natural width is
	// known by the time the transform is computed.
	doc.Transform = fit.For(doc.NaturalWidth(), req.ContainerWidth)
	return doc
}

func (r *Renderer) header(data model.ResumeData) Header {
	h := Header{
		FullName:      data.ProfileInfo.FullName,
		Designation:   data.ProfileInfo.Designation,
		Align:         r.style.Header.Align,
		UppercaseName: r.style.Header.UppercaseName,
	}
	if r.style.Header.ContactLine && visibility.ContactVisible(data) {
		h.Contact = r.contactItems(data.ContactInfo)
	}
	if r.style.Header.Summary && visibility.SummaryVisible(data) {
		h.Summary = data.ProfileInfo.Summary
	}
	return h
}

func (r *Renderer) sections(order []visibility.Section, data model.ResumeData) []Section {
	out := make([]Section, 0, len(order))
	for _, kind := range order {
		if !visibility.Visible(kind, data) {
			continue
		}
		out = append(out, r.section(kind, data))
	}
	return out
}

func (r *Renderer) section(kind visibility.Section, data model.ResumeData) Section {
	sec := Section{Kind: kind, Title: r.style.Title(kind)}
	switch kind {
	case visibility.Contact:
		sec.Contact = r.contactItems(data.ContactInfo)
	case visibility.Summary:
		sec.Text = data.ProfileInfo.Summary
	case visibility.WorkExperience:
		sec.Entries = make([]Entry, 0, len(data.WorkExperience))
		for _, w := range data.WorkExperience {
			sec.Entries = append(sec.Entries, r.workEntry(w))
		}
	case visibility.Projects:
		sec.Entries = make([]Entry, 0, len(data.Projects))
		for _, p := range data.Projects {
			sec.Entries = append(sec.Entries, projectEntry(p))
		}
	case visibility.Education:
		sec.Entries = make([]Entry, 0, len(data.Education))
		for _, e := range data.Education {
			sec.Entries = append(sec.Entries, r.educationEntry(e))
		}
	case visibility.Skills:
		sec.Items = names(data.Skills)
	case visibility.Languages:
		sec.Items = names(data.Languages)
	case visibility.Certifications:
		sec.Items = make([]string, 0, len(data.Certifications))
		for _, c := range data.Certifications {
			sec.Items = append(sec.Items, certification(c))
		}
	case visibility.Interests:
		sec.Items = append([]string(nil), data.Interests...)
	}
	return sec
}

func (r *Renderer) contactItems(c model.ContactInfo) []ContactItem {
	var items []ContactItem
	if c.Phone != "" {
		items = append(items, ContactItem{Kind: "phone", Label: "Phone", Value: c.Phone})
	}
	if c.Email != "" {
		items = append(items, ContactItem{Kind: "email", Label: "Email", Value: c.Email, URL: "mailto:" + c.Email})
	}
	if c.Location != "" {
		items = append(items, ContactItem{Kind: "location", Label: "Location", Value: c.Location})
	}
	byHandle := r.style.Entries.LinkLabels == LinkLabelHandle
	if c.LinkedIn != "" {
		value := "LinkedIn"
		if handle := format.ProfileHandle(c.LinkedIn); byHandle && handle != "" {
			value = "linkedin.com/in/" + handle
		}
		items = append(items, ContactItem{Kind: "linkedin", Label: "LinkedIn", Value: value, URL: c.LinkedIn})
	}
	if c.GitHub != "" {
		value := "GitHub"
		if handle := format.ProfileHandle(c.GitHub); byHandle && handle != "" {
			value = "github.com/" + handle
		}
		items = append(items, ContactItem{Kind: "github", Label: "GitHub", Value: value, URL: c.GitHub})
	}
	if c.Website != "" {
		value := "Portfolio"
		if byHandle {
			value = format.DisplayURL(c.Website)
		}
		items = append(items, ContactItem{Kind: "website", Label: "Portfolio", Value: value, URL: c.Website})
	}
	return items
}

func (r *Renderer) workEntry(w model.WorkExperience) Entry {
	e := Entry{
		Dates:   format.Range(w.StartDate, w.EndDate),
		Bullets: format.Bullets(w.Description),
	}
	if r.style.Entries.Emphasis == EmphasisCompany {
		e.Title = w.Company
		e.Subtitle = w.Role
		e.Detail = w.Location
		return e
	}
	e.Title = w.Role
	e.Subtitle = joinNonEmpty(", ", w.Company, w.Location)
	return e
}

func projectEntry(p model.Project) Entry {
	e := Entry{
		Title:   p.Title,
		Dates:   format.Range(p.StartDate, p.EndDate),
		Bullets: format.Bullets(p.Description),
		Tech:    format.JoinTags(p.Technologies),
	}
	if p.GitHub != "" {
		e.Links = append(e.Links, Link{Label: "GitHub", URL: p.GitHub})
	}
	if p.LiveDemo != "" {
		e.Links = append(e.Links, Link{Label: "Live Demo", URL: p.LiveDemo})
	}
	return e
}

func (r *Renderer) educationEntry(ed model.Education) Entry {
	e := Entry{
		Title:    ed.Institution,
		Subtitle: ed.Degree,
		Dates:    format.Range(ed.StartDate, ed.EndDate),
	}
	if score := r.score(ed.Percentage); score != "" {
		e.Detail = r.style.Entries.Score.Label + ": " + score
	}
	return e
}

func (r *Renderer) score(raw model.Text) string {
	value := strings.TrimSpace(raw.String())
	if value == "" {
		return ""
	}
	divisor := r.style.Entries.Score.Divisor
	if divisor <= 0 {
		return value
	}
	n, ok := raw.Float()
	if !ok {
		return value
	}
	return strconv.FormatFloat(n/divisor, 'f', -1, 64)
}

func certification(c model.Certification) string {
	year := strings.TrimSpace(c.Year.String())
	if year == "" {
		return c.Title
	}
	return c.Title + " (" + year + ")"
}

func names(items []model.NamedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Render renders req with the named style from the default registry. Unknown
// names fall back to the default style.
func Render(styleName string, req Request) Document {
	reg := DefaultRegistry()
	style, ok := reg.Lookup(styleName)
	if !ok {
		style = reg.Default()
	}
	return New(style).Render(req)
}
