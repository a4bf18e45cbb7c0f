package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

// ErrInvalidPayload is returned when a payload does not match the resume schema.
var ErrInvalidPayload = errors.New("invalid resume payload")

// FieldError describes one schema violation.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationError carries every schema violation found in a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Issue)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPayload }

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
	})
	return schema, schemaErr
}

// Validate checks a raw JSON payload against the resume schema. The schema
// only constrains shapes and types; no field is ever required.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, e := range res.Errors() {
		verr.Fields = append(verr.Fields, FieldError{Field: e.Field(), Issue: e.Description()})
	}
	return verr
}

// Parse validates raw and decodes it into ResumeData. An empty payload
// decodes to the zero ResumeData.
func Parse(raw []byte) (ResumeData, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ResumeData{}, nil
	}
	if err := Validate(raw); err != nil {
		return ResumeData{}, err
	}
	var data ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}
