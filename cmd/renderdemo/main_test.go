package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
	"resume-builder/resume/render"
)

const sampleJSON = `{
  "profileInfo": {"fullName": "Jordan Lee", "designation": "Backend Engineer"},
  "contactInfo": {"email": "jordan@example.com"},
  "skills": [{"name": "Go"}, {"name": "Postgres"}]
}`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestRenderJSON(t *testing.T) {
	out, _, err := runCLI(t, "render", writeSample(t), "--style", "04", "--format", "json", "--width", "396.85")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc render.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if doc.Style != "classic" || doc.Header.FullName != "Jordan Lee" || doc.Transform.Factor >= 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestRenderHTMLToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "resume.html")
	if _, _, err := runCLI(t, "render", writeSample(t), "-o", outPath); err != nil {
		t.Fatalf("render: %v", err)
	}
	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(html), "Jordan Lee") || !strings.Contains(string(html), "<!DOCTYPE html>") {
		t.Fatalf("unexpected html output")
	}
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	doc := render.Render("classic", render.Request{})
	out := &failingCloser{}
	err := writeAndClose(out, doc, "html")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected close error, got %v", err)
	}
	if !out.closed || out.Len() == 0 {
		t.Fatalf("expected output written and closed, closed=%v len=%d", out.closed, out.Len())
	}

	out = &failingCloser{}
	if err := writeAndClose(out, doc, "pdf"); err == nil || strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected the format error to win, got %v", err)
	}
	if !out.closed {
		t.Fatal("output not closed after a write error")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	sample := writeSample(t)
	if _, _, err := runCLI(t, "render", sample, "--style", "gothic"); err == nil || !strings.Contains(err.Error(), "executive") {
		t.Fatalf("expected unknown style error listing styles, got %v", err)
	}
	if _, _, err := runCLI(t, "render", sample, "--format", "pdf"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(bad, []byte(`{"skills":"Go"}`), 0o600)
	if _, _, err := runCLI(t, "render", bad); err == nil {
		t.Fatalf("expected schema error")
	}
}

func TestStylesCommand(t *testing.T) {
	out, _, err := runCLI(t, "styles")
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	for _, name := range []string{"executive", "classic", "modern"} {
		if !strings.Contains(out, name) {
			t.Fatalf("styles output missing %s:\n%s", name, out)
		}
	}
}

func TestAccountCommandsAgainstAPI(t *testing.T) {
	app, err := bootstrap.Build(context.Background(), config.Config{
		Env:                "dev",
		Store:              config.StoreMemory,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		AuthRateLimitRPS:   100,
		AuthRateLimitBurst: 100,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	session := filepath.Join(t.TempDir(), "session.json")
	common := []string{"--api", srv.URL, "--session", session}

	if _, _, err := runCLI(t, append([]string{"register", "--name", "Jordan", "--email", "jordan@example.com", "--password", "correct-horse"}, common...)...); err != nil {
		t.Fatalf("register: %v", err)
	}
	out, _, err := runCLI(t, append([]string{"profile"}, common...)...)
	if err != nil || !strings.Contains(out, "jordan@example.com") {
		t.Fatalf("profile: %v\n%s", err, out)
	}
	if _, _, err := runCLI(t, append([]string{"logout"}, common...)...); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := runCLI(t, append([]string{"profile"}, common...)...); err == nil {
		t.Fatalf("profile after logout should fail")
	}
}
