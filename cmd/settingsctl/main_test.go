package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestPaths_Settable(t *testing.T) {
	code, out, _ := runCmd(t, "paths", "--settable")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "_root_video_colorCorrection_content_gamma") {
		t.Error("gamma missing from settable paths")
	}
	if strings.Contains(out, "_root_video_tab") || strings.Contains(out, "variant") {
		t.Error("non-settable paths listed with --settable")
	}
}

func TestValidate_Embedded(t *testing.T) {
	code, out, errOut := runCmd(t, "validate")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.HasPrefix(out, "ok ") {
		t.Errorf("output = %q", out)
	}
}

func TestValidate_MissingName(t *testing.T) {
	dir := t.TempDir()
	schemaFile := filepath.Join(dir, "schema.yaml")
	writeFile(t, schemaFile, `
tabs:
  - kind: tab
    segment: video
    children:
      - kind: leaf
        segment: gamma
        type: float
        default: 1
`)
	bundles := filepath.Join(dir, "bundles")
	if err := os.Mkdir(bundles, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(bundles, "active.en.toml"), `
"_root_video_tab.name" = "Video"
"_root_video_old.name" = "Old"
`)

	code, out, errOut := runCmd(t, "validate", "--schema", schemaFile, "--bundles", bundles)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "_root_video_gamma.name") {
		t.Errorf("stderr = %q", errOut)
	}
	if !strings.Contains(out, "orphan [en] _root_video_old.name") {
		t.Errorf("stdout = %q", out)
	}
}

func TestResolve(t *testing.T) {
	code, out, _ := runCmd(t, "resolve", "-l", "zh-CN", "_root_video_codec_HEVC-choice-")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "HEVC（画质优先）") {
		t.Errorf("output = %q", out)
	}

	if code, _, _ := runCmd(t, "resolve"); code != 1 {
		t.Errorf("resolve without paths exit code = %d, want 1", code)
	}
}

func TestUnknownCommand(t *testing.T) {
	if code, _, errOut := runCmd(t, "frobnicate"); code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}
	if code, _, _ := runCmd(t); code != 2 {
		t.Errorf("no command exit code = %d, want 2", code)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
