package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line     string
		key, val string
		ok       bool
	}{
		{line: "PORT=9090", key: "PORT", val: "9090", ok: true},
		{line: "export STORE=mongo", key: "STORE", val: "mongo", ok: true},
		{line: `JWT_SECRET="s3cret # not a comment"`, key: "JWT_SECRET", val: "s3cret # not a comment", ok: true},
		{line: "MONGO_DATABASE='resumes'", key: "MONGO_DATABASE", val: "resumes", ok: true},
		{line: "LOG_LEVEL=debug # verbose locally", key: "LOG_LEVEL", val: "debug", ok: true},
		{line: "EMPTY=", key: "EMPTY", val: "", ok: true},
		{line: "# comment", ok: false},
		{line: "   ", ok: false},
		{line: "NOEQUALS", ok: false},
		{line: "BAD KEY=1", ok: false},
	}
	for _, tc := range tests {
		key, val, ok := parseEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || val != tc.val {
			t.Fatalf("parseEnvLine(%q) = %q, %q, %v; want %q, %q, %v", tc.line, key, val, ok, tc.key, tc.val, tc.ok)
		}
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "RB_DOTENV_SET=from-file\nRB_DOTENV_NEW=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RB_DOTENV_SET", "from-env")
	t.Setenv("RB_DOTENV_NEW", "")
	os.Unsetenv("RB_DOTENV_NEW")

	loadEnvFiles(filepath.Join(t.TempDir(), "missing.env"), path)

	if got := os.Getenv("RB_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing value overridden: %q", got)
	}
	if got := os.Getenv("RB_DOTENV_NEW"); got != "from-file" {
		t.Fatalf("new value not loaded: %q", got)
	}
}
