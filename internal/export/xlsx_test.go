package export

import (
	"testing"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

func TestWorkbook(t *testing.T) {
	sites := store.NewSites()
	sites.Add(&models.Site{
		ID: "S1", Name: "Site North", Technology: models.TechGSM,
		Position: models.Position{Latitude: 59.4, Longitude: 17.9},
	}, true)
	sites.AppendSector("S1", models.Sector{
		ID: "C1", Name: "North-A", Azimuth: 120, Beamwidth: 65,
		Height: models.NaN(), CellType: models.CellTypeDefault,
		CellIdentity: 1001, NetSegment: -1,
		BCCH: 57, BSIC: 33,
		ScramblingCode: models.NaN(), UARFCN: models.NaN(),
		EARFCN: models.NaN(), PCI: models.NaN(),
	})

	sessions := store.NewSessions()
	session := sessions.GetOrCreate("run1__42", "run1", "42")
	session.Results = append(session.Results, &models.AccuracyResult{MsgID: "7"})

	files := []models.FileStatistics{
		{Name: "network.txt", Type: models.FileTypeCellref, NumResults: 1, NumResultsAndCandidates: 2},
	}

	x, err := Workbook(sites, sessions, files)
	if err != nil {
		t.Fatal(err)
	}

	for _, sheet := range []string{"Sites", "Sectors", "Sessions", "Statistics"} {
		if idx, _ := x.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("sheet %s missing", sheet)
		}
	}
	if idx, _ := x.GetSheetIndex("Sheet1"); idx >= 0 {
		t.Fatal("default sheet must be dropped")
	}

	got, err := x.GetCellValue("Sites", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "S1" {
		t.Fatalf("Sites!A2 = %q, want S1", got)
	}

	// NaN sector fields render as empty cells
	height, err := x.GetCellValue("Sectors", "F2")
	if err != nil {
		t.Fatal(err)
	}
	if height != "" {
		t.Fatalf("Sectors!F2 = %q, want empty for NaN", height)
	}
	bcch, err := x.GetCellValue("Sectors", "J2")
	if err != nil {
		t.Fatal(err)
	}
	if bcch != "57" {
		t.Fatalf("Sectors!J2 = %q, want 57", bcch)
	}

	results, err := x.GetCellValue("Sessions", "D2")
	if err != nil {
		t.Fatal(err)
	}
	if results != "1" {
		t.Fatalf("Sessions!D2 = %q, want 1", results)
	}

	file, err := x.GetCellValue("Statistics", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if file != "network.txt" {
		t.Fatalf("Statistics!A2 = %q, want network.txt", file)
	}
}
