package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

const siteFileText = ";ElementTypeName\tGSM_Site\tName\tSiteID\tLatitude\tLongitude\n" +
	"GSM_Site\t\tSite North\tS1\t59.4\t17.9\n" +
	"GSM_Site\t\tSite South\tS2\t55.6\t12.5\n"

const accuracyFileText = "#SessionId\tMsgId\tCandidateIndex\tRefLatitude\tRefLongitude\tLatitude\tLongitude\tDistance\tConfidence\tProbMobility\tProbIndoor\n" +
	"42\t7\t0\t59.4\t17.9\t59.41\t17.91\t120\t0.95\t0.1\t0.2\n" +
	"42\t7\t1\t59.4\t17.9\t59.42\t17.92\t250\t0.05\t0.1\t0.2\n" +
	"42\t8\t0\t59.4\t17.9\t59.40\t17.90\t80\t0.99\t0.1\t0.2\n"

func newLoader() (*Loader, *store.Sites, *store.Sessions) {
	sites := store.NewSites()
	sessions := store.NewSessions()
	return NewLoader(sites, sessions), sites, sessions
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     models.FileType
	}{
		{"measurements.axf", models.FileTypeAxf},
		{"RUN1.AXF", models.FileTypeAxf},
		{"run1.distances", models.FileTypeAccuracy},
		{"network.cellref", models.FileTypeCellref},
		{"network.txt", models.FileTypeCellref},
		{"readme.md", models.FileTypeUnknown},
		{"noextension", models.FileTypeUnknown},
	}
	for _, tt := range tests {
		if got := DetectFileType(tt.filename); got != tt.want {
			t.Errorf("DetectFileType(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestLoadFileCellref(t *testing.T) {
	loader, sites, _ := newLoader()

	fs, ok := loader.LoadFile("network.txt", models.FileTypeCellref, siteFileText)
	if !ok {
		t.Fatal("expected a clean load")
	}
	if sites.Len() != 2 {
		t.Fatalf("expected 2 sites, got %d", sites.Len())
	}
	if fs.NumResults != 2 {
		t.Fatalf("numResults = %d, want 2", fs.NumResults)
	}
}

func TestLoadFileAccuracy(t *testing.T) {
	loader, _, sessions := newLoader()

	fs, ok := loader.LoadFile("run1.distances", models.FileTypeAccuracy, accuracyFileText)
	if !ok {
		t.Fatal("expected a clean load")
	}
	if fs.NumResults != 2 || fs.NumResultsAndCandidates != 3 {
		t.Fatalf("statistics = %d/%d, want 2/3", fs.NumResults, fs.NumResultsAndCandidates)
	}

	session := sessions.Get("run1.distances" + models.SessionKeySeparator + "42")
	if session == nil {
		t.Fatal("session not created under its composite key")
	}
	if len(session.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(session.Results))
	}
}

func TestLoadFileUnknownType(t *testing.T) {
	loader, _, _ := newLoader()

	_, ok := loader.LoadFile("data.bin", models.FileTypeUnknown, "payload")
	if ok {
		t.Fatal("unknown file type must fail the load")
	}
}

func TestLoadBatchFlag(t *testing.T) {
	loader, _, _ := newLoader()

	batch, ok := loader.LoadBatch([]BatchFile{
		{Name: "network.txt", Type: models.FileTypeCellref, Text: siteFileText},
		{Name: "broken.distances", Type: models.FileTypeAccuracy, Text: "#NotAHeader\nx\ty\n"},
	})
	if ok {
		t.Fatal("a failed file must fail the batch")
	}
	if batch.NumFailed != 1 {
		t.Fatalf("numFailed = %d, want 1", batch.NumFailed)
	}
	if len(batch.Files) != 2 {
		t.Fatalf("expected statistics for both files, got %d", len(batch.Files))
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("network.txt", siteFileText)
	write("run1.distances", accuracyFileText)
	write("notes.md", "ignore me")

	loader, sites, sessions := newLoader()
	batch, err := loader.LoadDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(batch.Files) != 2 {
		t.Fatalf("expected 2 loaded files, got %d", len(batch.Files))
	}
	if sites.Len() != 2 {
		t.Fatalf("expected 2 sites, got %d", sites.Len())
	}
	if sessions.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", sessions.Len())
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	loader, _, _ := newLoader()
	if _, err := loader.LoadDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestReset(t *testing.T) {
	loader, sites, sessions := newLoader()
	loader.LoadFile("network.txt", models.FileTypeCellref, siteFileText)
	loader.LoadFile("run1.distances", models.FileTypeAccuracy, accuracyFileText)

	loader.Reset()
	if sites.Len() != 0 || sessions.Len() != 0 {
		t.Fatal("reset must drop all loaded data")
	}
}
