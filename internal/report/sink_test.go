package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSink_WritesAllRenderings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	sink := FileSink{Dir: dir}

	paths, err := sink.Write(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}

	wantStem := "audit_20250314_093000"
	for name, path := range map[string]string{"text": paths.Text, "json": paths.JSON, "trail": paths.Trail} {
		if !strings.Contains(filepath.Base(path), wantStem) {
			t.Errorf("%s filename %q not timestamp-suffixed", name, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s report missing: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s report is empty", name)
		}
	}
}

func TestFileSink_UncreatableDirIsFatal(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// A regular file where the directory should go makes MkdirAll fail.
	sink := FileSink{Dir: filepath.Join(file, "results")}
	if _, err := sink.Write(sampleSnapshot()); err == nil {
		t.Fatal("expected an error when the sink cannot be created")
	}
}
