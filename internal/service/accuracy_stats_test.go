package service

import (
	"math"
	"testing"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

func addResult(sessions *store.Sessions, key string, result *models.AccuracyResult) {
	session := sessions.GetOrCreate(key, "file", key)
	session.Results = append(session.Results, result)
}

func resultWithDistance(d float64) *models.AccuracyResult {
	return &models.AccuracyResult{
		MsgID:              "m",
		ReferenceLatitude:  59.4,
		ReferenceLongitude: 17.9,
		Candidates: []models.LocationCandidate{
			{Latitude: 59.5, Longitude: 18.0, Distance: models.Float(d)},
		},
	}
}

func TestAccuracySummaryFromDistanceColumn(t *testing.T) {
	sessions := store.NewSessions()
	addResult(sessions, "a", resultWithDistance(100))
	addResult(sessions, "a", resultWithDistance(200))
	addResult(sessions, "b", resultWithDistance(300))

	summary := NewAccuracyStatsService(sessions).Summary(false)
	if summary.Samples != 3 {
		t.Fatalf("samples = %d, want 3", summary.Samples)
	}
	if summary.MeanMeters != 200 {
		t.Fatalf("mean = %v, want 200", summary.MeanMeters)
	}
	if summary.MedianMeters != 200 {
		t.Fatalf("median = %v, want 200", summary.MedianMeters)
	}
	if summary.P95Meters < 200 || summary.P95Meters > 300 {
		t.Fatalf("p95 = %v, want within (200, 300]", summary.P95Meters)
	}
	if summary.CDF != nil {
		t.Fatal("CDF must be omitted unless requested")
	}
}

func TestAccuracySummaryGeodesicFallback(t *testing.T) {
	sessions := store.NewSessions()
	// Distance column absent, candidate sits exactly on the reference
	result := &models.AccuracyResult{
		MsgID:              "m",
		ReferenceLatitude:  59.4,
		ReferenceLongitude: 17.9,
		Candidates: []models.LocationCandidate{
			{Latitude: 59.4, Longitude: 17.9, Distance: models.NaN()},
		},
	}
	addResult(sessions, "a", result)

	summary := NewAccuracyStatsService(sessions).Summary(false)
	if summary.Samples != 1 {
		t.Fatalf("samples = %d, want 1", summary.Samples)
	}
	if summary.MeanMeters != 0 {
		t.Fatalf("mean = %v, want 0 for a perfect fix", summary.MeanMeters)
	}
}

func TestAccuracySummarySkipsUnusableSamples(t *testing.T) {
	sessions := store.NewSessions()
	addResult(sessions, "a", resultWithDistance(150))

	// No candidates at all
	addResult(sessions, "a", &models.AccuracyResult{MsgID: "n"})

	// No distance and no usable positions
	addResult(sessions, "a", &models.AccuracyResult{
		MsgID:              "o",
		ReferenceLatitude:  models.NaN(),
		ReferenceLongitude: models.NaN(),
		Candidates: []models.LocationCandidate{
			{Latitude: 59.4, Longitude: 17.9, Distance: models.NaN()},
		},
	})

	summary := NewAccuracyStatsService(sessions).Summary(false)
	if summary.Samples != 1 {
		t.Fatalf("samples = %d, want 1", summary.Samples)
	}
	if summary.MeanMeters != 150 {
		t.Fatalf("mean = %v, want 150", summary.MeanMeters)
	}
}

func TestAccuracySummaryCDF(t *testing.T) {
	sessions := store.NewSessions()
	addResult(sessions, "a", resultWithDistance(300))
	addResult(sessions, "a", resultWithDistance(100))

	summary := NewAccuracyStatsService(sessions).Summary(true)
	if len(summary.CDF) != 2 {
		t.Fatalf("expected 2 CDF points, got %d", len(summary.CDF))
	}
	if summary.CDF[0].Meters != 100 || summary.CDF[0].Fraction != 0.5 {
		t.Fatalf("unexpected first CDF point: %+v", summary.CDF[0])
	}
	if summary.CDF[1].Meters != 300 || summary.CDF[1].Fraction != 1 {
		t.Fatalf("unexpected last CDF point: %+v", summary.CDF[1])
	}
}

func TestAccuracySummaryEmpty(t *testing.T) {
	summary := NewAccuracyStatsService(store.NewSessions()).Summary(true)
	if summary.Samples != 0 {
		t.Fatalf("samples = %d, want 0", summary.Samples)
	}
	if math.IsNaN(summary.MeanMeters) {
		t.Fatal("empty summary must not carry NaN")
	}
}
