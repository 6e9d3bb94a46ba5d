package parser

import (
	"math"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// AXF format, comma-separated. 10 columns is the base layout; 11 adds
// probIndoor, 14 adds session/controller/cell ids, 16 adds the
// reference cell group and the confidence scale factor.
const (
	axfMinFields        = 10
	axfProbIndoorFields = 11
	axfSessionFields    = 14
	axfReferenceFields  = 16
)

var axfSchema = &Schema{
	Name: "axf",
	Fields: []Field{
		{Name: "MsgId", Type: FieldString, Required: true},
		{Name: "Timestamp", Type: FieldString, Required: true},
		{Name: "Latitude", Type: FieldFloat, Required: true},
		{Name: "Longitude", Type: FieldFloat, Required: true},
		{Name: "MajorAxis", Type: FieldFloat},
		{Name: "MinorAxis", Type: FieldFloat},
		{Name: "Altitude", Type: FieldFloat},
		{Name: "Heading", Type: FieldFloat},
		{Name: "Confidence", Type: FieldInt, Required: true},
		{Name: "ProbMobility", Type: FieldInt, Required: true},
		{Name: "ProbIndoor", Type: FieldInt},
		{Name: "SessionId", Type: FieldString},
		{Name: "ControllerId", Type: FieldInt},
		{Name: "PrimaryCellId", Type: FieldInt},
		{Name: "ReferenceControllerId", Type: FieldInt},
		{Name: "ReferenceCellId", Type: FieldInt},
		{Name: "ConfidenceScaleFactor", Type: FieldFloat},
	},
}

// percentToDecimal converts a 0-100 integer percentage to 0.0-1.0.
// Non-numeric input passes through unchanged.
func percentToDecimal(value float64) float64 {
	if math.IsNaN(value) {
		return value
	}
	return value / 100.0
}

// axfParser emits one AxfResult per row; AXF rows are never grouped
type axfParser struct {
	sessions *store.Sessions
	index    *ColumnIndex
}

func (x *axfParser) parseRow(fields []string, fs *models.FileStatistics) {
	if len(fields) < axfMinFields {
		logger.Debug("skipping short axf row", "fields", len(fields))
		return
	}

	result := &models.AxfResult{
		MsgID:     x.index.StringValue(fields, "MsgId"),
		Timestamp: x.index.StringValue(fields, "Timestamp"),
		Latitude:  models.Float(x.index.FloatValue(fields, "Latitude")),
		Longitude: models.Float(x.index.FloatValue(fields, "Longitude")),

		Confidence:   models.Float(percentToDecimal(x.index.IntValue(fields, "Confidence"))),
		ProbMobility: models.Float(percentToDecimal(x.index.IntValue(fields, "ProbMobility"))),
		ProbIndoor:   models.NaN(),

		ControllerID:          models.NaN(),
		PrimaryCellID:         models.NaN(),
		ReferenceControllerID: models.NaN(),
		ReferenceCellID:       models.NaN(),
		ConfidenceScaleFactor: models.NaN(),
	}

	if len(fields) >= axfProbIndoorFields {
		result.ProbIndoor = models.Float(percentToDecimal(x.index.IntValue(fields, "ProbIndoor")))
	}

	// Files below the 14-column layout carry no session column; those
	// rows share one dummy session.
	sessionID := models.DummySessionID
	rawID := ""
	if len(fields) >= axfSessionFields {
		if sid := x.index.StringValue(fields, "SessionId"); sid != "" {
			sessionID = sid
			rawID = sid
		}
		result.ControllerID = models.Float(x.index.IntValue(fields, "ControllerId"))
		result.PrimaryCellID = models.Float(x.index.IntValue(fields, "PrimaryCellId"))
	}

	if len(fields) >= axfReferenceFields {
		result.ReferenceControllerID = models.Float(x.index.IntValue(fields, "ReferenceControllerId"))
		result.ReferenceCellID = models.Float(x.index.IntValue(fields, "ReferenceCellId"))
		result.ConfidenceScaleFactor = models.Float(x.index.FloatValue(fields, "ConfidenceScaleFactor"))
		if !result.ReferenceCellID.IsNaN() {
			fs.ReferenceCellsAvailable = true
		}
	}

	result.SessionID = sessionID
	session := x.sessions.GetOrCreate(sessionID, "", rawID)
	session.AxfResults = append(session.AxfResults, result)

	fs.NumResults++
	fs.NumResultsAndCandidates++
}
