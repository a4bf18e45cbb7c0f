package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"resume-builder/resume/visibility"
)

// Layout selects how the body is split.
type Layout string

const (
	TwoColumn    Layout = "two-column"
	SingleColumn Layout = "single-column"
)

// Link label modes for contact channels.
const (
	LinkLabelHandle = "handle" // "github.com/ada"
	LinkLabelName   = "name"   // "GitHub"
)

// Entry emphasis modes for work experience.
const (
	EmphasisRole    = "role"
	EmphasisCompany = "company"
)

const (
	gridColumns        = 12
	defaultSidebarSpan = 4
	pxPerMM            = 96 / 25.4
	a4WidthMM          = 210
	a4HeightMM         = 297
)

// Style describes one visual variant. All variants share the same section
// set and visibility rules; a style only decides placement and presentation.
type Style struct {
	Name        string                        `yaml:"name" json:"name"`
	Aliases     []string                      `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Layout      Layout                        `yaml:"layout" json:"layout"`
	SidebarSpan int                           `yaml:"sidebarSpan,omitempty" json:"sidebarSpan,omitempty"`
	Header      HeaderStyle                   `yaml:"header" json:"header"`
	Sidebar     []visibility.Section          `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	Main        []visibility.Section          `yaml:"main" json:"main"`
	Titles      map[visibility.Section]string `yaml:"titles,omitempty" json:"titles,omitempty"`
	Entries     EntryStyle                    `yaml:"entries" json:"entries"`
	Typography  Typography                    `yaml:"typography" json:"typography"`
	Page        Page                          `yaml:"page" json:"page"`
}

// HeaderStyle controls the header region.
type HeaderStyle struct {
	Align         string `yaml:"align,omitempty" json:"align,omitempty"`
	UppercaseName bool   `yaml:"uppercaseName,omitempty" json:"uppercaseName,omitempty"`
	// ContactLine renders contact channels inline in the header instead of a section.
	ContactLine bool `yaml:"contactLine,omitempty" json:"contactLine,omitempty"`
	// Summary renders the profile summary in the header instead of a section.
	Summary bool `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// EntryStyle controls how list entries are composed.
type EntryStyle struct {
	Emphasis   string     `yaml:"emphasis,omitempty" json:"emphasis,omitempty"`
	LinkLabels string     `yaml:"linkLabels,omitempty" json:"linkLabels,omitempty"`
	Score      ScoreStyle `yaml:"score" json:"score"`
}

// ScoreStyle controls the education score line, e.g. "GPA: 8.7" from 87.
type ScoreStyle struct {
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Divisor float64 `yaml:"divisor,omitempty" json:"divisor,omitempty"`
}

// Typography sizes are CSS pixels; colors are hex without '#'.
type Typography struct {
	FontFamily        string  `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	NameSize          float64 `yaml:"nameSize,omitempty" json:"nameSize,omitempty"`
	DesignationSize   float64 `yaml:"designationSize,omitempty" json:"designationSize,omitempty"`
	HeadingSize       float64 `yaml:"headingSize,omitempty" json:"headingSize,omitempty"`
	BodySize          float64 `yaml:"bodySize,omitempty" json:"bodySize,omitempty"`
	NameColor         string  `yaml:"nameColor,omitempty" json:"nameColor,omitempty"`
	HeadingColor      string  `yaml:"headingColor,omitempty" json:"headingColor,omitempty"`
	UppercaseHeadings bool    `yaml:"uppercaseHeadings,omitempty" json:"uppercaseHeadings,omitempty"`
}

// Page is the fixed canvas in millimetres.
type Page struct {
	WidthMM  float64 `yaml:"widthMM" json:"widthMM"`
	HeightMM float64 `yaml:"heightMM" json:"heightMM"`
}

// Size returns the canvas in CSS pixels (96 dpi).
func (p Page) Size() Size {
	return Size{Width: p.WidthMM * pxPerMM, Height: p.HeightMM * pxPerMM}
}

// Title returns the heading for a section, falling back to the section name.
func (s Style) Title(section visibility.Section) string {
	if t, ok := s.Titles[section]; ok && t != "" {
		return t
	}
	return string(section)
}

func (s *Style) applyDefaults() {
	if s.Layout == "" {
		s.Layout = TwoColumn
	}
	if s.Layout == TwoColumn && s.SidebarSpan == 0 {
		s.SidebarSpan = defaultSidebarSpan
	}
	if s.Header.Align == "" {
		s.Header.Align = "left"
	}
	if s.Entries.Emphasis == "" {
		s.Entries.Emphasis = EmphasisRole
	}
	if s.Entries.LinkLabels == "" {
		s.Entries.LinkLabels = LinkLabelName
	}
	if s.Entries.Score.Label == "" {
		s.Entries.Score.Label = "Percentage"
	}
	t := &s.Typography
	if t.FontFamily == "" {
		t.FontFamily = "Helvetica, Arial, sans-serif"
	}
	if t.NameSize == 0 {
		t.NameSize = 30
	}
	if t.DesignationSize == 0 {
		t.DesignationSize = 18
	}
	if t.HeadingSize == 0 {
		t.HeadingSize = 14
	}
	if t.BodySize == 0 {
		t.BodySize = 12
	}
	if t.NameColor == "" {
		t.NameColor = "111111"
	}
	if t.HeadingColor == "" {
		t.HeadingColor = "1F2937"
	}
	if s.Page.WidthMM == 0 && s.Page.HeightMM == 0 {
		s.Page = Page{WidthMM: a4WidthMM, HeightMM: a4HeightMM}
	}
}

// Validate checks that the style places every section exactly once.
func (s Style) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("style name is required")
	}
	switch s.Layout {
	case TwoColumn:
		if s.SidebarSpan <= 0 || s.SidebarSpan >= gridColumns {
			return fmt.Errorf("style %s: sidebarSpan must be between 1 and %d", s.Name, gridColumns-1)
		}
	case SingleColumn:
		if len(s.Sidebar) > 0 {
			return fmt.Errorf("style %s: single-column layout cannot have a sidebar", s.Name)
		}
	default:
		return fmt.Errorf("style %s: unknown layout %q", s.Name, s.Layout)
	}
	switch s.Entries.Emphasis {
	case EmphasisRole, EmphasisCompany:
	default:
		return fmt.Errorf("style %s: unknown entry emphasis %q", s.Name, s.Entries.Emphasis)
	}
	switch s.Entries.LinkLabels {
	case LinkLabelHandle, LinkLabelName:
	default:
		return fmt.Errorf("style %s: unknown link label mode %q", s.Name, s.Entries.LinkLabels)
	}
	if s.Entries.Score.Divisor < 0 {
		return fmt.Errorf("style %s: score divisor must not be negative", s.Name)
	}
	if s.Page.WidthMM <= 0 || s.Page.HeightMM <= 0 {
		return fmt.Errorf("style %s: page size must be positive", s.Name)
	}

	placed := make(map[visibility.Section]string)
	place := func(section visibility.Section, where string) error {
		if !visibility.Known(section) {
			return fmt.Errorf("style %s: unknown section %q in %s", s.Name, section, where)
		}
		if prev, ok := placed[section]; ok {
			return fmt.Errorf("style %s: section %s placed in both %s and %s", s.Name, section, prev, where)
		}
		placed[section] = where
		return nil
	}
	if s.Header.ContactLine {
		if err := place(visibility.Contact, "header"); err != nil {
			return err
		}
	}
	if s.Header.Summary {
		if err := place(visibility.Summary, "header"); err != nil {
			return err
		}
	}
	for _, section := range s.Sidebar {
		if err := place(section, "sidebar"); err != nil {
			return err
		}
	}
	for _, section := range s.Main {
		if err := place(section, "main"); err != nil {
			return err
		}
	}
	for _, section := range visibility.All() {
		if _, ok := placed[section]; !ok {
			return fmt.Errorf("style %s: section %s is not placed", s.Name, section)
		}
	}
	return nil
}

type styleFile struct {
	Styles []Style `yaml:"styles"`
}

// ParseStyles decodes a YAML style file, applies defaults and validates every style.
func ParseStyles(data []byte) ([]Style, error) {
	var file styleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode styles: %w", err)
	}
	if len(file.Styles) == 0 {
		return nil, errors.New("decode styles: no styles defined")
	}
	for i := range file.Styles {
		file.Styles[i].applyDefaults()
		if err := file.Styles[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Styles, nil
}

// LoadStylesFile reads and parses a YAML style file from disk.
func LoadStylesFile(path string) ([]Style, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return ParseStyles(data)
}

//go:embed styles.yaml
var builtinStyles []byte

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the registry of built-in styles.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		styles, err := ParseStyles(builtinStyles)
		if err != nil {
			panic(fmt.Sprintf("render: built-in styles are invalid: %v", err))
		}
		reg, err := NewRegistry(styles...)
		if err != nil {
			panic(fmt.Sprintf("render: built-in styles are invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Registry resolves style names and aliases. It is immutable after construction.
type Registry struct {
	order  []string
	styles map[string]Style
	alias  map[string]string
}

// NewRegistry builds a registry. Later styles replace earlier ones with the same name.
func NewRegistry(styles ...Style) (*Registry, error) {
	r := &Registry{styles: make(map[string]Style), alias: make(map[string]string)}
	for _, s := range styles {
		if err := r.add(s); err != nil {
			return nil, err
		}
	}
	if len(r.order) == 0 {
		return nil, errors.New("registry needs at least one style")
	}
	return r, nil
}

func (r *Registry) add(s Style) error {
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return err
	}
	key := normalizeName(s.Name)
	if _, exists := r.styles[key]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.styles[key] = s
	for _, a := range s.Aliases {
		r.alias[normalizeName(a)] = key
	}
	return nil
}

// With returns a new registry containing r's styles plus extra.
func (r *Registry) With(extra ...Style) (*Registry, error) {
	all := make([]Style, 0, len(r.order)+len(extra))
	for _, name := range r.order {
		all = append(all, r.styles[normalizeName(name)])
	}
	all = append(all, extra...)
	return NewRegistry(all...)
}

// Lookup finds a style by name or alias, case-insensitively. An empty name
// resolves to the default style.
func (r *Registry) Lookup(name string) (Style, bool) {
	key := normalizeName(name)
	if key == "" {
		return r.Default(), true
	}
	if s, ok := r.styles[key]; ok {
		return s, true
	}
	if target, ok := r.alias[key]; ok {
		return r.styles[target], true
	}
	return Style{}, false
}

// Default returns the first registered style.
func (r *Registry) Default() Style {
	return r.styles[normalizeName(r.order[0])]
}

// Names lists canonical style names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
