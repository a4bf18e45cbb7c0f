package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ResumeData is the structured resume a user edits. Every field is optional:
// empty strings and nil slices mean "not entered yet" and renderers must
// treat them as omitted content, never as an error.
type ResumeData struct {
	ProfileInfo    ProfileInfo      `json:"profileInfo" bson:"profileInfo"`
	ContactInfo    ContactInfo      `json:"contactInfo" bson:"contactInfo"`
	Education      []Education      `json:"education,omitempty" bson:"education,omitempty"`
	WorkExperience []WorkExperience `json:"workExperience,omitempty" bson:"workExperience,omitempty"`
	Projects       []Project        `json:"projects,omitempty" bson:"projects,omitempty"`
	Skills         []NamedItem      `json:"skills,omitempty" bson:"skills,omitempty"`
	Languages      []NamedItem      `json:"languages,omitempty" bson:"languages,omitempty"`
	Certifications []Certification  `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Interests      []string         `json:"interests,omitempty" bson:"interests,omitempty"`
}

// ProfileInfo holds the identity shown in the resume header.
type ProfileInfo struct {
	FullName    string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Designation string `json:"designation,omitempty" bson:"designation,omitempty"`
	Summary     string `json:"summary,omitempty" bson:"summary,omitempty"`
}

// ContactInfo holds independently optional contact channels.
type ContactInfo struct {
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty" bson:"github,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
}

// Education is a single school or degree entry.
type Education struct {
	Institution string `json:"institution,omitempty" bson:"institution,omitempty"`
	Degree      string `json:"degree,omitempty" bson:"degree,omitempty"`
	StartDate   string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Percentage  Text   `json:"percentage,omitempty" bson:"percentage,omitempty"`
}

// WorkExperience is a job entry. Description is newline-delimited bullet text.
type WorkExperience struct {
	Company     string `json:"company,omitempty" bson:"company,omitempty"`
	Role        string `json:"role,omitempty" bson:"role,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Project is a portfolio entry with optional links and technology tags.
type Project struct {
	Title        string   `json:"title,omitempty" bson:"title,omitempty"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	GitHub       string   `json:"github,omitempty" bson:"github,omitempty"`
	LiveDemo     string   `json:"liveDemo,omitempty" bson:"liveDemo,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

// NamedItem backs skills and languages.
type NamedItem struct {
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Certification is a titled certificate or achievement.
type Certification struct {
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Year  Text   `json:"year,omitempty" bson:"year,omitempty"`
}

// Text is a free-form scalar the editor may send either as a JSON string or
// a JSON number (percentages, years). It always decodes to its string form.
type Text string

// String returns the value as entered.
func (t Text) String() string { return string(t) }

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Float parses the value as a number. ok is false for empty or non-numeric text.
func (t Text) Float() (value float64, ok bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(string(t)), "%"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
