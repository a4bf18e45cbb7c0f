package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// Service manages resume records and renders them.
type Service struct {
	Repo   Repo
	Styles *render.Registry
	Now    func() time.Time
	NewID  func() string
}

// NewService constructs a Service. A nil registry uses the built-in styles.
func NewService(repo Repo, styles *render.Registry) *Service {
	if styles == nil {
		styles = render.DefaultRegistry()
	}
	return &Service{Repo: repo, Styles: styles, Now: time.Now, NewID: uuid.NewString}
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Resume, error) {
	if err := s.ready(userID); err != nil {
		return Resume{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Resume{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	style, err := s.style(in.Template)
	if err != nil {
		return Resume{}, err
	}

	now := s.now()
	res := Resume{
		ID:        s.NewID(),
		UserID:    userID,
		Title:     title,
		Template:  style.Name,
		Thumbnail: strings.TrimSpace(in.Thumbnail),
		Data:      in.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	metrics.IncResumeSaved()
	return res, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	if err := s.ready(userID); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	if err := s.ready(userID); err != nil {
		return Resume{}, err
	}
	if strings.TrimSpace(id) == "" {
		return Resume{}, ErrNotFound
	}
	return s.Repo.Get(ctx, userID, id)
}

// Update applies the non-nil fields of in and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Resume, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Resume{}, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		res.Title = title
	}
	if in.Template != nil {
		style, err := s.style(*in.Template)
		if err != nil {
			return Resume{}, err
		}
		res.Template = style.Name
	}
	if in.Thumbnail != nil {
		res.Thumbnail = strings.TrimSpace(*in.Thumbnail)
	}
	if in.Data != nil {
		res.Data = *in.Data
	}
	res.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resume{}, err
		}
		return Resume{}, fmt.Errorf("update resume: %w", err)
	}
	metrics.IncResumeSaved()
	return res, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.ready(userID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, userID, id)
}

// Render lays out a saved resume. An empty style uses the resume's template.
func (s *Service) Render(ctx context.Context, userID, id, style string, containerWidth float64) (render.Document, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return render.Document{}, err
	}
	if strings.TrimSpace(style) == "" {
		style = res.Template
	}
	return s.RenderData(style, res.Data, containerWidth)
}

// RenderData lays out data in the named style without touching storage.
func (s *Service) RenderData(style string, data model.ResumeData, containerWidth float64) (render.Document, error) {
	st, err := s.style(style)
	if err != nil {
		return render.Document{}, err
	}
	start := time.Now()
	doc := render.New(st).Render(render.Request{Data: data, ContainerWidth: containerWidth})
	metrics.IncRender()
	metrics.ObserveRenderDurationMs(metrics.SinceMillis(start))
	return doc, nil
}

// StyleList returns the registered styles in registration order.
func (s *Service) StyleList() []render.Style {
	names := s.Styles.Names()
	out := make([]render.Style, 0, len(names))
	for _, name := range names {
		if st, ok := s.Styles.Lookup(name); ok {
			out = append(out, st)
		}
	}
	return out
}

func (s *Service) style(name string) (render.Style, error) {
	st, ok := s.Styles.Lookup(name)
	if !ok {
		return render.Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, strings.TrimSpace(name))
	}
	return st, nil
}

func (s *Service) ready(userID string) error {
	if s == nil || s.Repo == nil || s.Styles == nil {
		return errors.New("resumes service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
