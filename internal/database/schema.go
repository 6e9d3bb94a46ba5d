package database

import (
	"database/sql"
	"fmt"
)

// Snapshot tables. Floats are stored as REAL and NaN maps to NULL; the
// repository layer handles the conversion in both directions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		technology TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sectors (
		site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		azimuth REAL,
		beamwidth REAL,
		height REAL,
		cell_type TEXT NOT NULL,
		cell_identity REAL,
		net_segment REAL,
		bcch REAL,
		bsic REAL,
		scrambling_code REAL,
		uarfcn REAL,
		earfcn REAL,
		pci REAL,
		PRIMARY KEY (site_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		file_id TEXT NOT NULL,
		raw_id TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accuracy_results (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		msg_id TEXT NOT NULL,
		timestamp TEXT,
		reference_latitude REAL,
		reference_longitude REAL,
		PRIMARY KEY (session_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		session_id TEXT NOT NULL,
		result_position INTEGER NOT NULL,
		position INTEGER NOT NULL,
		latitude REAL,
		longitude REAL,
		distance REAL,
		confidence REAL,
		prob_mobility REAL,
		prob_indoor REAL,
		controller_id REAL,
		primary_cell_id REAL,
		PRIMARY KEY (session_id, result_position, position),
		FOREIGN KEY (session_id, result_position)
			REFERENCES accuracy_results(session_id, position) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS axf_results (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		msg_id TEXT NOT NULL,
		raw_session_id TEXT,
		timestamp TEXT,
		latitude REAL,
		longitude REAL,
		confidence REAL,
		prob_mobility REAL,
		prob_indoor REAL,
		controller_id REAL,
		primary_cell_id REAL,
		reference_controller_id REAL,
		reference_cell_id REAL,
		confidence_scale_factor REAL,
		PRIMARY KEY (session_id, position)
	)`,
}

// CreateTables creates the snapshot tables if they do not exist
func CreateTables(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
