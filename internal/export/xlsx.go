package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// cell renders a NaN-able value as an empty cell
func cell(f models.Float) interface{} {
	if f.IsNaN() {
		return nil
	}
	return float64(f)
}

// Workbook builds an xlsx workbook of the loaded model: one sheet per
// entity kind plus the per-file load statistics.
func Workbook(sites *store.Sites, sessions *store.Sessions, files []models.FileStatistics) (*excelize.File, error) {
	x := excelize.NewFile()

	add := func(name string, rows [][]interface{}) error {
		idx, err := x.NewSheet(name)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("failed to address cell %d/%d: %w", r, c, err)
				}
				if err := x.SetCellValue(name, cellName, v); err != nil {
					return fmt.Errorf("failed to write cell %s!%s: %w", name, cellName, err)
				}
			}
		}
		if name == "Sites" {
			x.SetActiveSheet(idx)
		}
		return nil
	}

	if err := add("Sites", siteRows(sites)); err != nil {
		return nil, err
	}
	if err := add("Sectors", sectorRows(sites)); err != nil {
		return nil, err
	}
	if err := add("Sessions", sessionRows(sessions)); err != nil {
		return nil, err
	}
	if err := add("Statistics", statisticsRows(files)); err != nil {
		return nil, err
	}

	if err := x.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	return x, nil
}

func siteRows(sites *store.Sites) [][]interface{} {
	rows := [][]interface{}{
		{"SiteID", "Name", "Technology", "Latitude", "Longitude", "Sectors"},
	}
	for _, site := range sites.All() {
		rows = append(rows, []interface{}{
			site.ID, site.Name, string(site.Technology),
			site.Position.Latitude, site.Position.Longitude, len(site.Sectors),
		})
	}
	return rows
}

func sectorRows(sites *store.Sites) [][]interface{} {
	rows := [][]interface{}{
		{"SiteID", "CellID", "Name", "Azimuth", "Beamwidth", "Height", "CellType",
			"CellIdentity", "NetSegment", "BCCH", "BSIC", "ScramblingCode",
			"UARFCN", "EARFCN", "PCI"},
	}
	for _, site := range sites.All() {
		for _, sector := range site.Sectors {
			rows = append(rows, []interface{}{
				site.ID, sector.ID, sector.Name,
				cell(sector.Azimuth), cell(sector.Beamwidth), cell(sector.Height),
				string(sector.CellType), cell(sector.CellIdentity), cell(sector.NetSegment),
				cell(sector.BCCH), cell(sector.BSIC), cell(sector.ScramblingCode),
				cell(sector.UARFCN), cell(sector.EARFCN), cell(sector.PCI),
			})
		}
	}
	return rows
}

func sessionRows(sessions *store.Sessions) [][]interface{} {
	rows := [][]interface{}{
		{"SessionID", "FileID", "RawID", "Results", "AxfResults"},
	}
	for _, session := range sessions.All() {
		rows = append(rows, []interface{}{
			session.ID, session.FileID, session.RawID,
			len(session.Results), len(session.AxfResults),
		})
	}
	return rows
}

func statisticsRows(files []models.FileStatistics) [][]interface{} {
	rows := [][]interface{}{
		{"File", "Type", "NumResults", "NumResultsAndCandidates", "ReferenceCellsAvailable"},
	}
	for _, fs := range files {
		rows = append(rows, []interface{}{
			fs.Name, string(fs.Type), fs.NumResults, fs.NumResultsAndCandidates,
			fs.ReferenceCellsAvailable,
		})
	}
	return rows
}
