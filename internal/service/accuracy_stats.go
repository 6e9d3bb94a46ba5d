package service

import (
	"math"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/spatial"
	"github.com/jengzang/cellmap-backend-go/internal/stats"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// AccuracyStatsService summarizes the positioning error of loaded
// accuracy results. The best candidate of every result contributes one
// error distance.
type AccuracyStatsService struct {
	sessions *store.Sessions
}

// NewAccuracyStatsService creates a new accuracy statistics service
func NewAccuracyStatsService(sessions *store.Sessions) *AccuracyStatsService {
	return &AccuracyStatsService{sessions: sessions}
}

// CDFPoint is one point of the error-distance distribution
type CDFPoint struct {
	Meters   float64 `json:"meters"`
	Fraction float64 `json:"fraction"`
}

// AccuracySummary is the error-distance summary over all sessions
type AccuracySummary struct {
	Samples      int        `json:"samples"`
	MeanMeters   float64    `json:"meanMeters"`
	MedianMeters float64    `json:"medianMeters"`
	P67Meters    float64    `json:"p67Meters"`
	P95Meters    float64    `json:"p95Meters"`
	CDF          []CDFPoint `json:"cdf,omitempty"`
}

// errorDistance prefers the distance reported by the file and falls
// back to the geodesic distance between candidate and reference
// position. NaN means the sample contributes nothing.
func errorDistance(result *models.AccuracyResult, candidate *models.LocationCandidate) float64 {
	if !candidate.Distance.IsNaN() {
		return float64(candidate.Distance)
	}
	if result.ReferenceLatitude.IsNaN() || result.ReferenceLongitude.IsNaN() ||
		candidate.Latitude.IsNaN() || candidate.Longitude.IsNaN() {
		return math.NaN()
	}
	return spatial.HaversineDistance(
		float64(result.ReferenceLatitude), float64(result.ReferenceLongitude),
		float64(candidate.Latitude), float64(candidate.Longitude))
}

// Summary computes the error statistics, optionally with the full CDF
func (s *AccuracyStatsService) Summary(includeCDF bool) *AccuracySummary {
	var distances []float64
	for _, session := range s.sessions.All() {
		for _, result := range session.Results {
			candidate := result.BestCandidate()
			if candidate == nil {
				continue
			}
			if d := errorDistance(result, candidate); !math.IsNaN(d) {
				distances = append(distances, d)
			}
		}
	}

	summary := &AccuracySummary{Samples: len(distances)}
	if len(distances) == 0 {
		return summary
	}

	summary.MeanMeters = stats.Mean(distances)
	percentiles := stats.Percentiles(distances, []float64{50, 67, 95})
	summary.MedianMeters = percentiles[0]
	summary.P67Meters = percentiles[1]
	summary.P95Meters = percentiles[2]

	if includeCDF {
		values, fractions := stats.CDF(distances)
		summary.CDF = make([]CDFPoint, len(values))
		for i := range values {
			summary.CDF[i] = CDFPoint{Meters: values[i], Fraction: fractions[i]}
		}
	}
	return summary
}
