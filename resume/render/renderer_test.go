package render

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resume-builder/resume/model"
	"resume-builder/resume/visibility"
)

func sampleResume() model.ResumeData {
	return model.ResumeData{
		ProfileInfo: model.ProfileInfo{
			FullName:    "Ada Lovelace",
			Designation: "Analyst",
			Summary:     "Writes programs for engines.",
		},
		ContactInfo: model.ContactInfo{
			Phone:    "+44 20 1234",
			Email:    "ada@example.com",
			Location: "London",
			LinkedIn: "https://www.linkedin.com/in/ada/",
			GitHub:   "https://github.com/ada",
			Website:  "https://ada.dev/",
		},
		Education: []model.Education{
			{Institution: "Home", Degree: "Mathematics", StartDate: "1830-01", EndDate: "1835-06", Percentage: "87"},
		},
		WorkExperience: []model.WorkExperience{
			{Company: "Analytical Engines", Role: "Programmer", Location: "London", StartDate: "1842-09-01", EndDate: "1843-07-01", Description: "Built X\n\nShipped Y"},
		},
		Projects: []model.Project{
			{Title: "Note G", Description: "Bernoulli numbers", GitHub: "https://github.com/ada/note-g", Technologies: []string{"engine", "cards"}},
			{Title: "Plain"},
		},
		Skills:         []model.NamedItem{{Name: "Mathematics"}, {Name: "Poetry"}},
		Languages:      []model.NamedItem{{Name: "English"}},
		Certifications: []model.Certification{{Title: "Royal Society", Year: "1843"}, {Title: "Untimed"}},
		Interests:      []string{"Horses"},
	}
}

func kinds(sections []Section) []visibility.Section {
	out := make([]visibility.Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Kind)
	}
	return out
}

func mustStyle(t *testing.T, name string) Style {
	t.Helper()
	s, ok := DefaultRegistry().Lookup(name)
	if !ok {
		t.Fatalf("style %q not registered", name)
	}
	return s
}

func TestEmptyResumeRendersHeaderOnly(t *testing.T) {
	for _, name := range DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			doc := New(mustStyle(t, name)).Render(Request{})
			if got := doc.Sections(); len(got) != 0 {
				t.Fatalf("expected no sections, got %v", kinds(got))
			}
			if doc.Header.Contact != nil || doc.Header.Summary != "" {
				t.Fatalf("expected bare header, got %+v", doc.Header)
			}
			if doc.Transform.Factor != 1 {
				t.Fatalf("expected unscaled canvas, got %v", doc.Transform.Factor)
			}
		})
	}
}

func TestSectionPlacementPerStyle(t *testing.T) {
	cases := []struct {
		style   string
		spans   []int
		sidebar []visibility.Section
		main    []visibility.Section
	}{
		{
			style:   "executive",
			spans:   []int{5, 7},
			sidebar: []visibility.Section{visibility.Contact, visibility.Skills, visibility.Languages, visibility.Education, visibility.Certifications, visibility.Interests},
			main:    []visibility.Section{visibility.WorkExperience, visibility.Projects},
		},
		{
			style: "classic",
			spans: []int{12},
			main:  []visibility.Section{visibility.Summary, visibility.WorkExperience, visibility.Projects, visibility.Education, visibility.Skills, visibility.Languages, visibility.Certifications, visibility.Interests},
		},
		{
			style:   "modern",
			spans:   []int{4, 8},
			sidebar: []visibility.Section{visibility.Contact, visibility.Education, visibility.Skills, visibility.Languages, visibility.Certifications, visibility.Interests},
			main:    []visibility.Section{visibility.Summary, visibility.WorkExperience, visibility.Projects},
		},
	}
	for _, tc := range cases {
		t.Run(tc.style, func(t *testing.T) {
			doc := New(mustStyle(t, tc.style)).Render(Request{Data: sampleResume()})
			var spans []int
			var sidebar, main []visibility.Section
			for _, c := range doc.Columns {
				spans = append(spans, c.Span)
				switch c.Role {
				case RoleSidebar:
					sidebar = kinds(c.Sections)
				case RoleMain:
					main = kinds(c.Sections)
				}
			}
			if diff := cmp.Diff(tc.spans, spans); diff != "" {
				t.Fatalf("spans mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.sidebar, sidebar); diff != "" {
				t.Fatalf("sidebar mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.main, main); diff != "" {
				t.Fatalf("main mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeaderPlacementPerStyle(t *testing.T) {
	data := sampleResume()

	exec := New(mustStyle(t, "executive")).Render(Request{Data: data})
	if exec.Header.Summary != data.ProfileInfo.Summary {
		t.Fatalf("executive header summary = %q", exec.Header.Summary)
	}
	if _, ok := exec.Section(visibility.Summary); ok {
		t.Fatalf("executive must not repeat the summary as a section")
	}

	classic := New(mustStyle(t, "classic")).Render(Request{Data: data})
	if len(classic.Header.Contact) != 6 {
		t.Fatalf("classic contact line = %+v", classic.Header.Contact)
	}
	if _, ok := classic.Section(visibility.Contact); ok {
		t.Fatalf("classic must not repeat contact as a section")
	}
}

func TestWorkDescriptionBullets(t *testing.T) {
	doc := Render("classic", Request{Data: sampleResume()})
	work, ok := doc.Section(visibility.WorkExperience)
	if !ok {
		t.Fatalf("work experience section missing")
	}
	want := Entry{
		Title:    "Programmer",
		Subtitle: "Analytical Engines, London",
		Dates:    "Sep 1842 – Jul 1843",
		Bullets:  []string{"Built X", "Shipped Y"},
	}
	if diff := cmp.Diff([]Entry{want}, work.Entries); diff != "" {
		t.Fatalf("work entries mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanyEmphasis(t *testing.T) {
	doc := Render("modern", Request{Data: sampleResume()})
	work, _ := doc.Section(visibility.WorkExperience)
	got := work.Entries[0]
	if got.Title != "Analytical Engines" || got.Subtitle != "Programmer" || got.Detail != "London" {
		t.Fatalf("unexpected company-first entry %+v", got)
	}
}

func TestProjectLinksAndTechOnlyWhenPresent(t *testing.T) {
	doc := Render("executive", Request{Data: sampleResume()})
	projects, ok := doc.Section(visibility.Projects)
	if !ok {
		t.Fatalf("projects section missing")
	}
	want := []Entry{
		{
			Title:   "Note G",
			Bullets: []string{"Bernoulli numbers"},
			Links:   []Link{{Label: "GitHub", URL: "https://github.com/ada/note-g"}},
			Tech:    "engine, cards",
		},
		{Title: "Plain"},
	}
	if diff := cmp.Diff(want, projects.Entries); diff != "" {
		t.Fatalf("project entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLaterBlankItemsStillRender(t *testing.T) {
	data := model.ResumeData{
		Skills: []model.NamedItem{{Name: "Go"}, {Name: ""}},
	}
	doc := Render("executive", Request{Data: data})
	skills, ok := doc.Section(visibility.Skills)
	if !ok {
		t.Fatalf("skills section missing")
	}
	if diff := cmp.Diff([]string{"Go", ""}, skills.Items); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestBlankFirstItemHidesSection(t *testing.T) {
	data := model.ResumeData{
		Skills: []model.NamedItem{{Name: ""}, {Name: "Go"}},
	}
	doc := Render("executive", Request{Data: data})
	if _, ok := doc.Section(visibility.Skills); ok {
		t.Fatalf("skills should be hidden when the first item is blank")
	}
}

func TestEducationScore(t *testing.T) {
	data := sampleResume()

	exec := Render("executive", Request{Data: data})
	edu, _ := exec.Section(visibility.Education)
	if got := edu.Entries[0].Detail; got != "Percentage: 87" {
		t.Fatalf("executive score = %q", got)
	}

	modern := Render("modern", Request{Data: data})
	edu, _ = modern.Section(visibility.Education)
	if got := edu.Entries[0].Detail; got != "GPA: 8.7" {
		t.Fatalf("modern score = %q", got)
	}

	data.Education[0].Percentage = "first class"
	modern = Render("modern", Request{Data: data})
	edu, _ = modern.Section(visibility.Education)
	if got := edu.Entries[0].Detail; got != "GPA: first class" {
		t.Fatalf("non-numeric score = %q", got)
	}
}

func TestCertificationsAndContactLabels(t *testing.T) {
	doc := Render("executive", Request{Data: sampleResume()})
	certs, _ := doc.Section(visibility.Certifications)
	if diff := cmp.Diff([]string{"Royal Society (1843)", "Untimed"}, certs.Items); diff != "" {
		t.Fatalf("certifications mismatch (-want +got):\n%s", diff)
	}

	contact, _ := doc.Section(visibility.Contact)
	want := []ContactItem{
		{Kind: "phone", Label: "Phone", Value: "+44 20 1234"},
		{Kind: "email", Label: "Email", Value: "ada@example.com", URL: "mailto:ada@example.com"},
		{Kind: "location", Label: "Location", Value: "London"},
		{Kind: "linkedin", Label: "LinkedIn", Value: "linkedin.com/in/ada", URL: "https://www.linkedin.com/in/ada/"},
		{Kind: "github", Label: "GitHub", Value: "github.com/ada", URL: "https://github.com/ada"},
		{Kind: "website", Label: "Portfolio", Value: "ada.dev", URL: "https://ada.dev/"},
	}
	if diff := cmp.Diff(want, contact.Contact); diff != "" {
		t.Fatalf("contact mismatch (-want +got):\n%s", diff)
	}
}

func TestHostOnlyProfileLinksUseNameLabels(t *testing.T) {
	data := sampleResume()
	data.ContactInfo.LinkedIn = "https://linkedin.com/"
	data.ContactInfo.GitHub = "https://github.com"

	doc := Render("executive", Request{Data: data})
	contact, _ := doc.Section(visibility.Contact)
	got := map[string]string{}
	for _, item := range contact.Contact {
		got[item.Kind] = item.Value
	}
	if got["linkedin"] != "LinkedIn" || got["github"] != "GitHub" {
		t.Fatalf("host-only profile labels = %q / %q", got["linkedin"], got["github"])
	}
}

func TestFitTransform(t *testing.T) {
	a4 := 210 * 96 / 25.4

	doc := Render("classic", Request{Data: sampleResume()})
	if math.Abs(doc.NaturalWidth()-a4) > 1e-9 {
		t.Fatalf("natural width = %v, want %v", doc.NaturalWidth(), a4)
	}
	if doc.Transform.Factor != 1 {
		t.Fatalf("zero container should not scale, got %v", doc.Transform.Factor)
	}

	doc = Render("classic", Request{Data: sampleResume(), ContainerWidth: a4 / 2})
	if math.Abs(doc.Transform.Factor-0.5) > 1e-9 {
		t.Fatalf("factor = %v, want 0.5", doc.Transform.Factor)
	}
	scaled := doc.ScaledSize()
	if math.Abs(scaled.Width/scaled.Height-doc.Page.Width/doc.Page.Height) > 1e-9 {
		t.Fatalf("aspect ratio changed: %+v vs %+v", scaled, doc.Page)
	}
}

func TestUnknownStyleFallsBackToDefault(t *testing.T) {
	doc := Render("no-such-style", Request{})
	if doc.Style != DefaultRegistry().Default().Name {
		t.Fatalf("style = %q", doc.Style)
	}
}
