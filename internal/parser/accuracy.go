package parser

import (
	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// Accuracy (".distances") format, tab-separated. The 11-column v3
// layout is the base; 13 columns add controller/cell ids, 14 adds a
// timestamp. 9-column files are the unsupported legacy export.
const (
	accuracyLegacyFields     = 9
	accuracyMinFields        = 11
	accuracyControllerFields = 13
	accuracyTimestampFields  = 14
)

var accuracySchema = &Schema{
	Name: "accuracy v3",
	Fields: []Field{
		{Name: "SessionId", Type: FieldString, Required: true},
		{Name: "MsgId", Type: FieldString, Required: true},
		{Name: "CandidateIndex", Type: FieldInt, Required: true},
		{Name: "RefLatitude", Type: FieldFloat, Required: true},
		{Name: "RefLongitude", Type: FieldFloat, Required: true},
		{Name: "Latitude", Type: FieldFloat, Required: true},
		{Name: "Longitude", Type: FieldFloat, Required: true},
		{Name: "Distance", Type: FieldFloat, Required: true},
		{Name: "Confidence", Type: FieldFloat, Required: true},
		{Name: "ProbMobility", Type: FieldFloat, Required: true},
		{Name: "ProbIndoor", Type: FieldFloat, Required: true},
		{Name: "ControllerId", Type: FieldInt},
		{Name: "PrimaryCellId", Type: FieldInt},
		{Name: "Timestamp", Type: FieldString},
	},
}

// accuracyV3Parser folds candidate rows into AccuracyResults. One
// result stays open at a time; it is closed when a row arrives with a
// different msgId. msgId-equal rows are contiguous by caller contract,
// the parser never sorts or hash-groups.
type accuracyV3Parser struct {
	sessions *store.Sessions
	fileID   string
	index    *ColumnIndex

	current *models.AccuracyResult
}

func (a *accuracyV3Parser) parseRow(fields []string, fs *models.FileStatistics) {
	if len(fields) < accuracyMinFields {
		logger.Debug("skipping short accuracy row",
			"file", a.fileID, "fields", len(fields))
		return
	}

	sessionID := a.index.StringValue(fields, "SessionId")
	msgID := a.index.StringValue(fields, "MsgId")

	candidate := models.LocationCandidate{
		Latitude:      models.Float(a.index.FloatValue(fields, "Latitude")),
		Longitude:     models.Float(a.index.FloatValue(fields, "Longitude")),
		Distance:      models.Float(a.index.FloatValue(fields, "Distance")),
		Confidence:    models.Float(a.index.FloatValue(fields, "Confidence")),
		ProbMobility:  models.Float(a.index.FloatValue(fields, "ProbMobility")),
		ProbIndoor:    models.Float(a.index.FloatValue(fields, "ProbIndoor")),
		ControllerID:  models.NaN(),
		PrimaryCellID: models.NaN(),
	}
	if len(fields) >= accuracyControllerFields {
		candidate.ControllerID = models.Float(a.index.IntValue(fields, "ControllerId"))
		candidate.PrimaryCellID = models.Float(a.index.IntValue(fields, "PrimaryCellId"))
	}

	if a.current == nil || a.current.MsgID != msgID {
		// Session ids repeat across source files; the composite key
		// keeps them apart.
		key := a.fileID + models.SessionKeySeparator + sessionID
		session := a.sessions.GetOrCreate(key, a.fileID, sessionID)

		result := &models.AccuracyResult{
			MsgID:              msgID,
			ReferenceLatitude:  models.Float(a.index.FloatValue(fields, "RefLatitude")),
			ReferenceLongitude: models.Float(a.index.FloatValue(fields, "RefLongitude")),
		}
		if len(fields) >= accuracyTimestampFields {
			result.Timestamp = a.index.StringValue(fields, "Timestamp")
		}

		session.Results = append(session.Results, result)
		a.current = result
		fs.NumResults++
	}

	a.current.Candidates = append(a.current.Candidates, candidate)
	fs.NumResultsAndCandidates++
}
