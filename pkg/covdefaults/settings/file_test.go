package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenDedicatedFile(t *testing.T) {
	path := writeConfig(t, ".coverage.toml", `
[run]
branch = false
omit = ["*/legacy/*"]

[report]
fail_under = 90
`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := Bool(s, "run:branch"); got {
		t.Error("run:branch should be false")
	}
	if got := Strings(s, "run:omit"); !reflect.DeepEqual(got, []string{"*/legacy/*"}) {
		t.Errorf("run:omit = %v", got)
	}
	if got := Int(s, "report:fail_under"); got != 90 {
		t.Errorf("report:fail_under = %d, want 90", got)
	}
	if _, ok := s.GetOption("run:source"); ok {
		t.Error("unset option should report as absent")
	}
}

func TestOpenPyproject(t *testing.T) {
	path := writeConfig(t, "pyproject.toml", `
[project]
name = "mypkg"

[tool.coverage.run]
branch = true

[tool.coverage.report]
fail_under = 80
`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !Bool(s, "run:branch") {
		t.Error("run:branch not extracted from nested layout")
	}
	if got := Int(s, "report:fail_under"); got != 80 {
		t.Errorf("report:fail_under = %d, want 80", got)
	}
}

// A pyproject.toml without coverage tables still uses the nested
// layout on save.
func TestOpenPyprojectWithoutCoverage(t *testing.T) {
	path := writeConfig(t, "pyproject.toml", `
[project]
name = "mypkg"
`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SetOption("run:branch", true)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !Bool(reloaded, "run:branch") {
		t.Error("option not written under [tool.coverage.run]")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpenInvalidTOML(t *testing.T) {
	path := writeConfig(t, ".coverage.toml", "[run\nbranch =")
	if _, err := Open(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeConfig(t, ".coverage.toml", `
[run]
omit = ["*/legacy/*"]
`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SetOption("run:branch", true)
	s.SetOption("report:fail_under", 100)
	s.Paths()["mypkg"] = []string{"src/mypkg", "venv/lib/mypkg"}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !Bool(reloaded, "run:branch") {
		t.Error("run:branch lost in round trip")
	}
	if got := Strings(reloaded, "run:omit"); !reflect.DeepEqual(got, []string{"*/legacy/*"}) {
		t.Errorf("run:omit = %v", got)
	}
	if got := Int(reloaded, "report:fail_under"); got != 100 {
		t.Errorf("report:fail_under = %d", got)
	}
	if got := reloaded.Paths()["mypkg"]; !reflect.DeepEqual(got, []string{"src/mypkg", "venv/lib/mypkg"}) {
		t.Errorf("paths[mypkg] = %v", got)
	}
}

// Saving a pyproject file must not disturb content outside the
// coverage tables.
func TestSavePreservesUnrelatedContent(t *testing.T) {
	path := writeConfig(t, "pyproject.toml", `
[project]
name = "mypkg"
version = "1.0.0"

[tool.black]
line-length = 88

[tool.coverage.run]
branch = false
`)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SetOption("run:branch", true)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file does not parse: %v", err)
	}

	project, _ := doc["project"].(map[string]any)
	if project["name"] != "mypkg" || project["version"] != "1.0.0" {
		t.Errorf("[project] table disturbed: %v", project)
	}
	tool, _ := doc["tool"].(map[string]any)
	if _, ok := tool["black"]; !ok {
		t.Errorf("[tool.black] table lost: %v", tool)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".coverage.toml")
	s := Create(path)
	s.SetOption("run:branch", true)

	if _, err := os.Stat(path); err == nil {
		t.Fatal("Create should not write until Save")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !Bool(reloaded, "run:branch") {
		t.Error("created file missing the saved option")
	}
}
