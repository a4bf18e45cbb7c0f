package resumes

import (
	"encoding/json"
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type createRequest struct {
	Title     string          `json:"title"`
	Template  string          `json:"template"`
	Thumbnail string          `json:"thumbnail"`
	Data      json.RawMessage `json:"data"`
}

type updateRequest struct {
	Title     *string         `json:"title"`
	Template  *string         `json:"template"`
	Thumbnail *string         `json:"thumbnail"`
	Data      json.RawMessage `json:"data"`
}

type renderRequest struct {
	Style string          `json:"style"`
	Width float64         `json:"width"`
	Data  json.RawMessage `json:"data"`
}

type resumeResponse struct {
	ID        string           `json:"_id"`
	Title     string           `json:"title"`
	Template  string           `json:"template"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	Data      model.ResumeData `json:"data"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// resumeSummary is the list item shape; it omits the resume body.
type resumeSummary struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type styleResponse struct {
	Name    string        `json:"name"`
	Aliases []string      `json:"aliases,omitempty"`
	Layout  render.Layout `json:"layout"`
}

func newResumeResponse(r Resume) resumeResponse {
	return resumeResponse{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		Thumbnail: r.Thumbnail,
		Data:      r.Data,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newResumeSummaries(list []Resume) []resumeSummary {
	out := make([]resumeSummary, 0, len(list))
	for _, r := range list {
		out = append(out, resumeSummary{
			ID:        r.ID,
			Title:     r.Title,
			Template:  r.Template,
			Thumbnail: r.Thumbnail,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}
