// Package visibility decides which resume sections render for a given
// ResumeData.
//
// A list-backed section is visible when the list is non-empty and its first
// item has its identifying field filled in. Only the first item is checked:
// later items with blank identifying fields still render once the section
// is visible. Callers must not filter items further.
package visibility

import "resume-builder/resume/model"

// Section names a renderable resume section.
type Section string

const (
	Contact        Section = "contact"
	Education      Section = "education"
	Skills         Section = "skills"
	Languages      Section = "languages"
	Certifications Section = "certifications"
	Interests      Section = "interests"
	Summary        Section = "summary"
	WorkExperience Section = "workExperience"
	Projects       Section = "projects"
)

// All lists every section in canonical order.
func All() []Section {
	return []Section{
		Contact,
		Summary,
		WorkExperience,
		Projects,
		Education,
		Skills,
		Languages,
		Certifications,
		Interests,
	}
}

// Known reports whether s names a section.
func Known(s Section) bool {
	_, ok := predicates[s]
	return ok
}

var predicates = map[Section]func(model.ResumeData) bool{
	Contact:        ContactVisible,
	Education:      EducationVisible,
	Skills:         SkillsVisible,
	Languages:      LanguagesVisible,
	Certifications: CertificationsVisible,
	Interests:      InterestsVisible,
	Summary:        SummaryVisible,
	WorkExperience: WorkExperienceVisible,
	Projects:       ProjectsVisible,
}

// Visible reports whether section s renders for data. Unknown sections never render.
func Visible(s Section, data model.ResumeData) bool {
	pred, ok := predicates[s]
	if !ok {
		return false
	}
	return pred(data)
}

// ContactVisible requires a phone number or an email address.
func ContactVisible(data model.ResumeData) bool {
	return data.ContactInfo.Phone != "" || data.ContactInfo.Email != ""
}

func SummaryVisible(data model.ResumeData) bool {
	return data.ProfileInfo.Summary != ""
}

func EducationVisible(data model.ResumeData) bool {
	return len(data.Education) > 0 && data.Education[0].Institution != ""
}

func WorkExperienceVisible(data model.ResumeData) bool {
	return len(data.WorkExperience) > 0 && data.WorkExperience[0].Company != ""
}

func ProjectsVisible(data model.ResumeData) bool {
	return len(data.Projects) > 0 && data.Projects[0].Title != ""
}

func SkillsVisible(data model.ResumeData) bool {
	return len(data.Skills) > 0 && data.Skills[0].Name != ""
}

func LanguagesVisible(data model.ResumeData) bool {
	return len(data.Languages) > 0 && data.Languages[0].Name != ""
}

func CertificationsVisible(data model.ResumeData) bool {
	return len(data.Certifications) > 0 && data.Certifications[0].Title != ""
}

func InterestsVisible(data model.ResumeData) bool {
	return len(data.Interests) > 0 && data.Interests[0] != ""
}
