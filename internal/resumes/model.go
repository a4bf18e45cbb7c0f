package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// Resume is a saved resume owned by one user. Template names a render style.
type Resume struct {
	ID        string
	UserID    string
	Title     string
	Template  string
	Thumbnail string
	Data      model.ResumeData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput describes a new resume. A zero Template selects the default style.
type CreateInput struct {
	Title     string
	Template  string
	Thumbnail string
	Data      model.ResumeData
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	Template  *string
	Thumbnail *string
	Data      *model.ResumeData
}
