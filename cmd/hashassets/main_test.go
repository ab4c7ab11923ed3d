// Package main provides tests for the hashassets CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/hashassets/internal/cli"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "hashassets") {
		t.Errorf("version output should contain 'hashassets', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"run", "watch", "digest", "--assets-dir"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRunCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.html"), `<script src="/assets/app.js"></script>`)
	writeFile(t, filepath.Join(root, "assets", "app.js"), `console.log("hi")`)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"run", "--root", root})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command error = %v\n%s", err, buf.String())
	}

	entries, err := os.ReadDir(filepath.Join(root, "assets"))
	if err != nil {
		t.Fatalf("failed to read assets dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(entries))
	}
	renamed := entries[0].Name()
	if !regexp.MustCompile(`^[0-9a-f]{16}\.js$`).MatchString(renamed) {
		t.Errorf("asset name %q is not a fingerprinted name", renamed)
	}

	html, err := os.ReadFile(filepath.Join(root, "index.html"))
	if err != nil {
		t.Fatalf("failed to read index.html: %v", err)
	}
	want := `<script src="/assets/` + renamed + `"></script>`
	if string(html) != want {
		t.Errorf("index.html = %q, want %q", html, want)
	}
}

func TestRunCommandMissingAssetsDir(t *testing.T) {
	root := t.TempDir()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"run", "--root", root})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when the assets directory does not exist")
	}
}
