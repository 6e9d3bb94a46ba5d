package parser

import (
	"strings"
	"testing"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

const axfHeader10 = "#MsgId,Timestamp,Latitude,Longitude,MajorAxis,MinorAxis,Altitude,Heading,Confidence,ProbMobility"
const axfHeader11 = axfHeader10 + ",ProbIndoor"
const axfHeader14 = axfHeader11 + ",SessionId,ControllerId,PrimaryCellId"
const axfHeader16 = axfHeader14 + ",ReferenceControllerId,ReferenceCellId"
const axfHeader17 = axfHeader16 + ",ConfidenceScaleFactor"

func axfRow(msgID string, extra ...string) string {
	fields := []string{msgID, "20250814100000", "59.31", "18.11", "150", "80", "25", "90", "83", "40"}
	return strings.Join(append(fields, extra...), ",")
}

func parseAxf(t *testing.T, sessions *store.Sessions, lines ...string) (models.FileStatistics, bool) {
	t.Helper()
	parser := NewResultParser(sessions)
	var fs models.FileStatistics
	ok := parser.Parse("test.axf", models.FileTypeAxf, strings.Join(lines, "\n"), &fs)
	return fs, ok
}

func TestAxfPercentConversion(t *testing.T) {
	sessions := store.NewSessions()
	fs, ok := parseAxf(t, sessions, axfHeader11, axfRow("7", "12"))
	if !ok {
		t.Fatal("expected a clean parse")
	}

	session := sessions.Get(models.DummySessionID)
	if session == nil || len(session.AxfResults) != 1 {
		t.Fatal("expected one result in the dummy session")
	}

	result := session.AxfResults[0]
	if result.Confidence != 0.83 {
		t.Fatalf("confidence = %v, want 0.83", result.Confidence)
	}
	if result.ProbMobility != 0.40 {
		t.Fatalf("probMobility = %v, want 0.40", result.ProbMobility)
	}
	if result.ProbIndoor != 0.12 {
		t.Fatalf("probIndoor = %v, want 0.12", result.ProbIndoor)
	}
	if fs.NumResults != 1 {
		t.Fatalf("numResults = %d, want 1", fs.NumResults)
	}
}

func TestAxfNonNumericPercentPassesThrough(t *testing.T) {
	sessions := store.NewSessions()
	row := strings.Join([]string{"7", "20250814100000", "59.31", "18.11", "150", "80", "25", "90", "n/a", "40"}, ",")
	parseAxf(t, sessions, axfHeader10, row)

	result := sessions.Get(models.DummySessionID).AxfResults[0]
	if !result.Confidence.IsNaN() {
		t.Fatalf("non-numeric percentage must pass through as NaN, got %v", result.Confidence)
	}
	if result.ProbMobility != 0.40 {
		t.Fatalf("probMobility = %v, want 0.40", result.ProbMobility)
	}
}

func TestAxfBaseVariantHasNoProbIndoor(t *testing.T) {
	sessions := store.NewSessions()
	parseAxf(t, sessions, axfHeader10, axfRow("7"))

	result := sessions.Get(models.DummySessionID).AxfResults[0]
	if !result.ProbIndoor.IsNaN() {
		t.Fatalf("probIndoor must stay NaN below 11 columns, got %v", result.ProbIndoor)
	}
}

func TestAxfSessionVariant(t *testing.T) {
	sessions := store.NewSessions()
	fs, _ := parseAxf(t, sessions,
		axfHeader14,
		axfRow("7", "12", "77", "310", "4711"),
		axfRow("8", "12", "77", "310", "4711"),
	)

	if sessions.Get(models.DummySessionID) != nil {
		t.Fatal("rows with a session column must not land in the dummy session")
	}
	session := sessions.Get("77")
	if session == nil || len(session.AxfResults) != 2 {
		t.Fatal("expected both rows in session 77")
	}
	if session.AxfResults[0].ControllerID != 310 || session.AxfResults[0].PrimaryCellID != 4711 {
		t.Fatalf("controller/cell ids missing: %+v", session.AxfResults[0])
	}
	// The 14-column layout has no reference cell columns
	if fs.ReferenceCellsAvailable {
		t.Fatal("referenceCellsAvailable must be false below 16 columns")
	}
}

func TestAxfReferenceVariant(t *testing.T) {
	sessions := store.NewSessions()
	fs, _ := parseAxf(t, sessions,
		axfHeader16,
		axfRow("7", "12", "77", "310", "4711", "311", ""),
		axfRow("8", "12", "77", "310", "4711", "311", "4712"),
		axfRow("9", "12", "77", "310", "4711", "311", ""),
	)

	// Sticky: one populated reference cell is enough
	if !fs.ReferenceCellsAvailable {
		t.Fatal("referenceCellsAvailable must be true once any row has a reference cell")
	}

	results := sessions.Get("77").AxfResults
	if results[1].ReferenceCellID != 4712 || results[1].ReferenceControllerID != 311 {
		t.Fatalf("reference ids missing: %+v", results[1])
	}
	if !results[0].ReferenceCellID.IsNaN() {
		t.Fatalf("empty reference cell must be NaN, got %v", results[0].ReferenceCellID)
	}
	// No ConfidenceScaleFactor column in the 16-column layout
	if !results[1].ConfidenceScaleFactor.IsNaN() {
		t.Fatalf("confidenceScaleFactor must stay NaN without its column, got %v", results[1].ConfidenceScaleFactor)
	}
}

func TestAxfConfidenceScaleFactor(t *testing.T) {
	sessions := store.NewSessions()
	_, ok := parseAxf(t, sessions,
		axfHeader17,
		axfRow("7", "12", "77", "310", "4711", "311", "4712", "1.5"),
		axfRow("8", "12", "77", "310", "4711", "311", "4712", ""),
	)
	if !ok {
		t.Fatal("expected a clean parse")
	}

	results := sessions.Get("77").AxfResults
	if results[0].ConfidenceScaleFactor != 1.5 {
		t.Fatalf("confidenceScaleFactor = %v, want 1.5", results[0].ConfidenceScaleFactor)
	}
	if !results[1].ConfidenceScaleFactor.IsNaN() {
		t.Fatalf("empty confidenceScaleFactor must be NaN, got %v", results[1].ConfidenceScaleFactor)
	}
}

func TestAxfShortRowSkipped(t *testing.T) {
	sessions := store.NewSessions()
	fs, ok := parseAxf(t, sessions,
		axfHeader10,
		"7,20250814100000,59.31",
		axfRow("8"),
	)
	if !ok {
		t.Fatal("short rows are skipped, not failed")
	}
	if fs.NumResults != 1 {
		t.Fatalf("expected 1 result, got %d", fs.NumResults)
	}
}

func TestAxfNarrowHeaderRejected(t *testing.T) {
	sessions := store.NewSessions()
	_, ok := parseAxf(t, sessions,
		"#MsgId,Timestamp,Latitude,Longitude",
		"7,20250814100000,59.31,18.11",
	)
	if ok {
		t.Fatal("header below 10 fields must be a file-level failure")
	}
	if sessions.Len() != 0 {
		t.Fatal("no rows may be parsed from a rejected file")
	}
}
