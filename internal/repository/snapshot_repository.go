package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// SnapshotRepository persists the in-memory model to sqlite and back.
// A snapshot is all-or-nothing: saving replaces the previous snapshot,
// restoring replaces the in-memory model.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// nullable maps NaN to NULL for storage
func nullable(f models.Float) interface{} {
	if f.IsNaN() {
		return nil
	}
	return float64(f)
}

// fromNull maps NULL back to NaN
func fromNull(v sql.NullFloat64) models.Float {
	if !v.Valid {
		return models.NaN()
	}
	return models.Float(v.Float64)
}

// Save writes the current model as the one stored snapshot
func (r *SnapshotRepository) Save(sites *store.Sites, sessions *store.Sessions) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"candidates", "accuracy_results", "axf_results", "sessions", "sectors", "sites"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := r.saveSites(tx, sites); err != nil {
		return err
	}
	if err := r.saveSessions(tx, sessions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) saveSites(tx *sql.Tx, sites *store.Sites) error {
	siteStmt, err := tx.Prepare(`INSERT INTO sites (id, name, technology, latitude, longitude, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare site insert: %w", err)
	}
	defer siteStmt.Close()

	sectorStmt, err := tx.Prepare(`INSERT INTO sectors (site_id, position, id, name, azimuth, beamwidth,
		height, cell_type, cell_identity, net_segment, bcch, bsic, scrambling_code, uarfcn, earfcn, pci)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sector insert: %w", err)
	}
	defer sectorStmt.Close()

	for i, site := range sites.All() {
		_, err := siteStmt.Exec(site.ID, site.Name, string(site.Technology),
			site.Position.Latitude, site.Position.Longitude, i)
		if err != nil {
			return fmt.Errorf("failed to save site %s: %w", site.ID, err)
		}

		for j, sector := range site.Sectors {
			_, err := sectorStmt.Exec(site.ID, j, sector.ID, sector.Name,
				nullable(sector.Azimuth), nullable(sector.Beamwidth), nullable(sector.Height),
				string(sector.CellType), nullable(sector.CellIdentity), nullable(sector.NetSegment),
				nullable(sector.BCCH), nullable(sector.BSIC), nullable(sector.ScramblingCode),
				nullable(sector.UARFCN), nullable(sector.EARFCN), nullable(sector.PCI))
			if err != nil {
				return fmt.Errorf("failed to save sector %s of site %s: %w", sector.ID, site.ID, err)
			}
		}
	}
	return nil
}

func (r *SnapshotRepository) saveSessions(tx *sql.Tx, sessions *store.Sessions) error {
	sessionStmt, err := tx.Prepare(`INSERT INTO sessions (id, file_id, raw_id, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare session insert: %w", err)
	}
	defer sessionStmt.Close()

	resultStmt, err := tx.Prepare(`INSERT INTO accuracy_results (session_id, position, msg_id, timestamp,
		reference_latitude, reference_longitude) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer resultStmt.Close()

	candidateStmt, err := tx.Prepare(`INSERT INTO candidates (session_id, result_position, position,
		latitude, longitude, distance, confidence, prob_mobility, prob_indoor, controller_id, primary_cell_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare candidate insert: %w", err)
	}
	defer candidateStmt.Close()

	axfStmt, err := tx.Prepare(`INSERT INTO axf_results (session_id, position, msg_id, raw_session_id,
		timestamp, latitude, longitude, confidence, prob_mobility, prob_indoor, controller_id,
		primary_cell_id, reference_controller_id, reference_cell_id, confidence_scale_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare axf insert: %w", err)
	}
	defer axfStmt.Close()

	for i, session := range sessions.All() {
		if _, err := sessionStmt.Exec(session.ID, session.FileID, session.RawID, i); err != nil {
			return fmt.Errorf("failed to save session %s: %w", session.ID, err)
		}

		for j, result := range session.Results {
			_, err := resultStmt.Exec(session.ID, j, result.MsgID, result.Timestamp,
				nullable(result.ReferenceLatitude), nullable(result.ReferenceLongitude))
			if err != nil {
				return fmt.Errorf("failed to save result %s: %w", result.MsgID, err)
			}

			for k, c := range result.Candidates {
				_, err := candidateStmt.Exec(session.ID, j, k,
					nullable(c.Latitude), nullable(c.Longitude), nullable(c.Distance),
					nullable(c.Confidence), nullable(c.ProbMobility), nullable(c.ProbIndoor),
					nullable(c.ControllerID), nullable(c.PrimaryCellID))
				if err != nil {
					return fmt.Errorf("failed to save candidate %d of %s: %w", k, result.MsgID, err)
				}
			}
		}

		for j, result := range session.AxfResults {
			_, err := axfStmt.Exec(session.ID, j, result.MsgID, result.SessionID, result.Timestamp,
				nullable(result.Latitude), nullable(result.Longitude), nullable(result.Confidence),
				nullable(result.ProbMobility), nullable(result.ProbIndoor), nullable(result.ControllerID),
				nullable(result.PrimaryCellID), nullable(result.ReferenceControllerID),
				nullable(result.ReferenceCellID), nullable(result.ConfidenceScaleFactor))
			if err != nil {
				return fmt.Errorf("failed to save axf result %s: %w", result.MsgID, err)
			}
		}
	}
	return nil
}

// Restore replaces the in-memory model with the stored snapshot. The
// collections fire one batched notification each.
func (r *SnapshotRepository) Restore(sites *store.Sites, sessions *store.Sessions) error {
	sites.Reset()
	sessions.Reset()

	if err := r.restoreSites(sites); err != nil {
		return err
	}
	if err := r.restoreSessions(sessions); err != nil {
		return err
	}

	sites.Trigger()
	sessions.Trigger()
	return nil
}

func (r *SnapshotRepository) restoreSites(sites *store.Sites) error {
	rows, err := r.db.Query(`SELECT id, name, technology, latitude, longitude FROM sites ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to load sites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var site models.Site
		var technology string
		if err := rows.Scan(&site.ID, &site.Name, &technology,
			&site.Position.Latitude, &site.Position.Longitude); err != nil {
			return fmt.Errorf("failed to scan site: %w", err)
		}
		site.Technology = models.Technology(technology)
		sites.Add(&site, true)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate sites: %w", err)
	}

	return r.restoreSectors(sites)
}

func (r *SnapshotRepository) restoreSectors(sites *store.Sites) error {
	rows, err := r.db.Query(`SELECT site_id, id, name, azimuth, beamwidth, height, cell_type,
		cell_identity, net_segment, bcch, bsic, scrambling_code, uarfcn, earfcn, pci
		FROM sectors ORDER BY site_id, position`)
	if err != nil {
		return fmt.Errorf("failed to load sectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var siteID, cellType string
		var sector models.Sector
		var azimuth, beamwidth, height, cellIdentity, netSegment sql.NullFloat64
		var bcch, bsic, scramblingCode, uarfcn, earfcn, pci sql.NullFloat64

		err := rows.Scan(&siteID, &sector.ID, &sector.Name, &azimuth, &beamwidth, &height,
			&cellType, &cellIdentity, &netSegment, &bcch, &bsic, &scramblingCode,
			&uarfcn, &earfcn, &pci)
		if err != nil {
			return fmt.Errorf("failed to scan sector: %w", err)
		}

		sector.CellType = models.CellType(cellType)
		sector.Azimuth = fromNull(azimuth)
		sector.Beamwidth = fromNull(beamwidth)
		sector.Height = fromNull(height)
		sector.CellIdentity = fromNull(cellIdentity)
		sector.NetSegment = fromNull(netSegment)
		sector.BCCH = fromNull(bcch)
		sector.BSIC = fromNull(bsic)
		sector.ScramblingCode = fromNull(scramblingCode)
		sector.UARFCN = fromNull(uarfcn)
		sector.EARFCN = fromNull(earfcn)
		sector.PCI = fromNull(pci)

		if !sites.AppendSector(siteID, sector) {
			return fmt.Errorf("sector %s references missing site %s", sector.ID, siteID)
		}
	}
	return rows.Err()
}

func (r *SnapshotRepository) restoreSessions(sessions *store.Sessions) error {
	rows, err := r.db.Query(`SELECT id, file_id, raw_id FROM sessions ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, fileID, rawID string
		if err := rows.Scan(&id, &fileID, &rawID); err != nil {
			return fmt.Errorf("failed to scan session: %w", err)
		}
		sessions.GetOrCreate(id, fileID, rawID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate sessions: %w", err)
	}

	if err := r.restoreResults(sessions); err != nil {
		return err
	}
	return r.restoreAxfResults(sessions)
}

func (r *SnapshotRepository) restoreResults(sessions *store.Sessions) error {
	rows, err := r.db.Query(`SELECT session_id, msg_id, timestamp, reference_latitude, reference_longitude
		FROM accuracy_results ORDER BY session_id, position`)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var result models.AccuracyResult
		var timestamp sql.NullString
		var refLat, refLon sql.NullFloat64
		if err := rows.Scan(&sessionID, &result.MsgID, &timestamp, &refLat, &refLon); err != nil {
			return fmt.Errorf("failed to scan result: %w", err)
		}
		result.Timestamp = timestamp.String
		result.ReferenceLatitude = fromNull(refLat)
		result.ReferenceLongitude = fromNull(refLon)

		session := sessions.Get(sessionID)
		if session == nil {
			return fmt.Errorf("result references missing session %s", sessionID)
		}
		session.Results = append(session.Results, &result)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate results: %w", err)
	}

	return r.restoreCandidates(sessions)
}

func (r *SnapshotRepository) restoreCandidates(sessions *store.Sessions) error {
	rows, err := r.db.Query(`SELECT session_id, result_position, latitude, longitude, distance,
		confidence, prob_mobility, prob_indoor, controller_id, primary_cell_id
		FROM candidates ORDER BY session_id, result_position, position`)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var resultPosition int
		var lat, lon, distance, confidence, probMobility, probIndoor, controllerID, primaryCellID sql.NullFloat64

		err := rows.Scan(&sessionID, &resultPosition, &lat, &lon, &distance,
			&confidence, &probMobility, &probIndoor, &controllerID, &primaryCellID)
		if err != nil {
			return fmt.Errorf("failed to scan candidate: %w", err)
		}

		session := sessions.Get(sessionID)
		if session == nil || resultPosition >= len(session.Results) {
			return fmt.Errorf("candidate references missing result %s/%d", sessionID, resultPosition)
		}

		result := session.Results[resultPosition]
		result.Candidates = append(result.Candidates, models.LocationCandidate{
			Latitude:      fromNull(lat),
			Longitude:     fromNull(lon),
			Distance:      fromNull(distance),
			Confidence:    fromNull(confidence),
			ProbMobility:  fromNull(probMobility),
			ProbIndoor:    fromNull(probIndoor),
			ControllerID:  fromNull(controllerID),
			PrimaryCellID: fromNull(primaryCellID),
		})
	}
	return rows.Err()
}

func (r *SnapshotRepository) restoreAxfResults(sessions *store.Sessions) error {
	rows, err := r.db.Query(`SELECT session_id, msg_id, raw_session_id, timestamp, latitude, longitude,
		confidence, prob_mobility, prob_indoor, controller_id, primary_cell_id,
		reference_controller_id, reference_cell_id, confidence_scale_factor
		FROM axf_results ORDER BY session_id, position`)
	if err != nil {
		return fmt.Errorf("failed to load axf results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var result models.AxfResult
		var rawSessionID, timestamp sql.NullString
		var lat, lon, confidence, probMobility, probIndoor sql.NullFloat64
		var controllerID, primaryCellID, refControllerID, refCellID, scaleFactor sql.NullFloat64

		err := rows.Scan(&sessionID, &result.MsgID, &rawSessionID, &timestamp, &lat, &lon,
			&confidence, &probMobility, &probIndoor, &controllerID, &primaryCellID,
			&refControllerID, &refCellID, &scaleFactor)
		if err != nil {
			return fmt.Errorf("failed to scan axf result: %w", err)
		}

		result.SessionID = rawSessionID.String
		result.Timestamp = timestamp.String
		result.Latitude = fromNull(lat)
		result.Longitude = fromNull(lon)
		result.Confidence = fromNull(confidence)
		result.ProbMobility = fromNull(probMobility)
		result.ProbIndoor = fromNull(probIndoor)
		result.ControllerID = fromNull(controllerID)
		result.PrimaryCellID = fromNull(primaryCellID)
		result.ReferenceControllerID = fromNull(refControllerID)
		result.ReferenceCellID = fromNull(refCellID)
		result.ConfidenceScaleFactor = fromNull(scaleFactor)

		session := sessions.Get(sessionID)
		if session == nil {
			return fmt.Errorf("axf result references missing session %s", sessionID)
		}
		session.AxfResults = append(session.AxfResults, &result)
	}
	return rows.Err()
}
