package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinariesMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "absent", Command: "definitely-not-a-real-binary-xyz"},
		{Name: "unset", Command: "  "},
	})
	if len(statuses) != 2 {
		t.Fatalf("len(statuses) = %d", len(statuses))
	}
	for _, status := range statuses {
		if status.Available {
			t.Errorf("%s reported available", status.Name)
		}
		if status.Detail == "" {
			t.Errorf("%s has no detail", status.Name)
		}
	}
}

func TestCheckBinariesFindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture is unix-only")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fakeprobe")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries([]Requirement{{Name: "fakeprobe", Command: "fakeprobe"}})
	if !statuses[0].Available {
		t.Errorf("fakeprobe not found: %+v", statuses[0])
	}
}

func TestMissingSkipsOptional(t *testing.T) {
	statuses := []Status{
		{Name: "required", Available: false},
		{Name: "optional", Available: false, Optional: true},
		{Name: "present", Available: true},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "required" {
		t.Errorf("Missing = %+v", missing)
	}
}

func TestRequirementsUsesConfiguredBinary(t *testing.T) {
	reqs := Requirements(nil)
	if len(reqs) == 0 || reqs[0].Command != "ffprobe" {
		t.Fatalf("Requirements(nil) = %+v", reqs)
	}
}
