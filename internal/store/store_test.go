package store

import (
	"testing"

	"github.com/jengzang/cellmap-backend-go/internal/models"
)

func TestSitesSilentAddAndTrigger(t *testing.T) {
	sites := NewSites()

	fired := 0
	sites.OnAdd(func() { fired++ })

	sites.Add(&models.Site{ID: "S1", Name: "North"}, true)
	sites.Add(&models.Site{ID: "S2", Name: "South"}, true)
	if fired != 0 {
		t.Fatalf("silent adds fired %d notifications", fired)
	}

	sites.Trigger()
	if fired != 1 {
		t.Fatalf("expected one batched notification, got %d", fired)
	}

	if sites.Len() != 2 {
		t.Fatalf("expected 2 sites, got %d", sites.Len())
	}
	if sites.Get("S1") == nil || sites.Get("S3") != nil {
		t.Fatal("unexpected lookup results")
	}
}

func TestSitesLastWriteWins(t *testing.T) {
	sites := NewSites()
	sites.Add(&models.Site{ID: "S1", Name: "old"}, true)
	sites.Add(&models.Site{ID: "S1", Name: "new"}, true)

	if sites.Len() != 1 {
		t.Fatalf("expected 1 site, got %d", sites.Len())
	}
	if got := sites.Get("S1").Name; got != "new" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestAppendSectorRequiresSite(t *testing.T) {
	sites := NewSites()
	sites.Add(&models.Site{ID: "S1"}, true)

	if !sites.AppendSector("S1", models.Sector{ID: "C1"}) {
		t.Fatal("expected sector append to known site to succeed")
	}
	if sites.AppendSector("missing", models.Sector{ID: "C2"}) {
		t.Fatal("expected sector append to unknown site to fail")
	}
	if n := sites.NumSectors(); n != 1 {
		t.Fatalf("expected 1 sector, got %d", n)
	}
}

func TestSessionsGetOrCreate(t *testing.T) {
	sessions := NewSessions()

	a := sessions.GetOrCreate("A__42", "A", "42")
	b := sessions.GetOrCreate("A__42", "A", "42")
	if a != b {
		t.Fatal("expected the same session instance on repeated lookup")
	}

	c := sessions.GetOrCreate("B__42", "B", "42")
	if c == a {
		t.Fatal("expected distinct sessions for distinct composite keys")
	}

	if sessions.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", sessions.Len())
	}
	if got := sessions.At(0); got != a {
		t.Fatal("expected insertion order to be preserved")
	}
	if got := sessions.At(5); got != nil {
		t.Fatal("expected nil for out-of-range index")
	}
}
