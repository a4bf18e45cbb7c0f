package render

import (
	"resume-builder/resume/fit"
	"resume-builder/resume/visibility"
)

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is a laid-out resume on a fixed canvas plus the uniform transform
// that fits it into the requested container. It is rebuilt on every render.
type Document struct {
	Style      string        `json:"style"`
	Layout     Layout        `json:"layout"`
	Page       Size          `json:"page"`
	Transform  fit.Transform `json:"transform"`
	Typography Typography    `json:"typography"`
	Header     Header        `json:"header"`
	Columns    []Column      `json:"columns"`
}

// Header is the top region: name, designation and, depending on the style,
// an inline contact line or the profile summary.
type Header struct {
	FullName      string        `json:"fullName"`
	Designation   string        `json:"designation"`
	Align         string        `json:"align"`
	UppercaseName bool          `json:"uppercaseName,omitempty"`
	Contact       []ContactItem `json:"contact,omitempty"`
	Summary       string        `json:"summary,omitempty"`
}

// Column roles.
const (
	RoleSidebar = "sidebar"
	RoleMain    = "main"
)

// Column is one body region. Span is measured in twelfths of the body width.
type Column struct {
	Role     string    `json:"role"`
	Span     int       `json:"span"`
	Sections []Section `json:"sections"`
}

// Section is one rendered resume section. Exactly one of Contact, Text,
// Items or Entries is populated depending on Kind.
type Section struct {
	Kind    visibility.Section `json:"kind"`
	Title   string             `json:"title"`
	Contact []ContactItem      `json:"contact,omitempty"`
	Text    string             `json:"text,omitempty"`
	Items   []string           `json:"items,omitempty"`
	Entries []Entry            `json:"entries,omitempty"`
}

// ContactItem is a single contact channel; URL is set for clickable channels.
type ContactItem struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// Entry is one education, work or project item.
type Entry struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
	Links    []Link   `json:"links,omitempty"`
	Tech     string   `json:"tech,omitempty"`
}

// Link is an optional per-entry hyperlink.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// NaturalWidth is the unscaled canvas width.
func (d Document) NaturalWidth() float64 { return d.Page.Width }

// ScaledSize is the canvas size after the fit transform.
func (d Document) ScaledSize() Size {
	w, h := d.Transform.Apply(d.Page.Width, d.Page.Height)
	return Size{Width: w, Height: h}
}

// Sections returns every rendered section across columns, sidebar first.
func (d Document) Sections() []Section {
	var out []Section
	for _, c := range d.Columns {
		out = append(out, c.Sections...)
	}
	return out
}

// Section finds a rendered section by kind.
func (d Document) Section(kind visibility.Section) (Section, bool) {
	for _, c := range d.Columns {
		for _, s := range c.Sections {
			if s.Kind == kind {
				return s, true
			}
		}
	}
	return Section{}, false
}
