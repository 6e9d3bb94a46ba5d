package parser

import (
	"math"
	"strings"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// SiteIDKey is the canonical lookup key for the owning-site column of
// every sector schema, regardless of technology.
const SiteIDKey = "SiteIDForCell"

const headerRowMarker = "ElementTypeName"

var cellrefSiteSchema = &Schema{
	Name: "cellref site",
	Fields: []Field{
		{Name: "ElementTypeName", Type: FieldString, Required: true},
		{Name: "Name", Type: FieldString, Required: true},
		{Name: "SiteID", Type: FieldString, Required: true},
		{Name: "Latitude", Type: FieldFloat, Required: true},
		{Name: "Longitude", Type: FieldFloat, Required: true},
	},
}

// sectorSchema builds a sector schema; the technology-specific
// site-reference column resolves under the canonical SiteIDKey.
func sectorSchema(name, siteRefName string, extra ...Field) *Schema {
	fields := []Field{
		{Name: "ElementTypeName", Type: FieldString, Required: true},
		{Name: "Name", Type: FieldString, Required: true},
		{Name: "CellID", Type: FieldString, Required: true},
		{Name: siteRefName, Key: SiteIDKey, Type: FieldString, Required: true},
		{Name: "Azimuth", Type: FieldFloat},
		{Name: "Beamwidth", Type: FieldFloat},
		{Name: "Height", Type: FieldFloat},
		{Name: "CellType", Type: FieldString},
		{Name: "CellIdentity", Type: FieldInt},
		{Name: "NetSegment", Type: FieldInt, Default: "-1"},
	}
	return &Schema{Name: name, Fields: append(fields, extra...)}
}

var (
	cellrefGSMSectorSchema = sectorSchema("GSM sector", "SiteIDForGsmCell",
		Field{Name: "BCCH", Type: FieldInt},
		Field{Name: "BSIC", Type: FieldInt},
	)
	cellrefWCDMASectorSchema = sectorSchema("WCDMA sector", "SiteIDForWcdmaCell",
		Field{Name: "ScramblingCode", Type: FieldInt},
		Field{Name: "UARFCN", Type: FieldInt},
	)
	cellrefLTESectorSchema = sectorSchema("LTE sector", "SiteIDForLteCell",
		Field{Name: "EARFCN", Type: FieldInt},
		Field{Name: "PCI", Type: FieldInt},
	)
)

// schemaForElementType selects the schema announced by the second
// field of a header row.
func schemaForElementType(elementType string) *Schema {
	switch elementType {
	case "GSM_Site", "WCDMA_Site", "LTE_Site":
		return cellrefSiteSchema
	case "GSM_Cell":
		return cellrefGSMSectorSchema
	case "WCDMA_Cell":
		return cellrefWCDMASectorSchema
	case "LTE_Cell":
		return cellrefLTESectorSchema
	}
	return nil
}

func technologyForElementType(elementType string) models.Technology {
	switch {
	case strings.HasPrefix(elementType, "GSM_"):
		return models.TechGSM
	case strings.HasPrefix(elementType, "WCDMA_"):
		return models.TechWCDMA
	case strings.HasPrefix(elementType, "LTE_"):
		return models.TechLTE
	}
	return models.TechUnknown
}

func cellTypeFromToken(token string) models.CellType {
	switch strings.ToLower(token) {
	case "smallcell":
		return models.CellTypeSmallCell
	case "indoor":
		return models.CellTypeIndoor
	}
	return models.CellTypeDefault
}

// CellrefParser classifies the tab-separated rows of a cellref file.
// A header row fully replaces the active column index, which is what
// lets one file interleave site and sector blocks of different
// technologies.
type CellrefParser struct {
	sites *store.Sites
	index *ColumnIndex
}

// NewCellrefParser creates a parser populating the given site collection
func NewCellrefParser(sites *store.Sites) *CellrefParser {
	return &CellrefParser{
		sites: sites,
		index: NewColumnIndex(),
	}
}

// Parse processes the whole file text. Row-level problems log and
// continue; an invalid header row stops the file. One batched add
// notification fires on the site collection when the row loop ends.
// The returned flag is advisory: rows parsed before a failure stay in
// the model.
func (p *CellrefParser) Parse(name, text string, fs *models.FileStatistics) bool {
	fs.Name = name
	fs.Type = models.FileTypeCellref

	ok := true
	for _, line := range splitLines(text) {
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(line, "\t")
		first := strings.TrimSpace(fields[0])

		switch {
		case strings.HasPrefix(first, ";"):
			if len(fields) == 1 {
				continue // human comment
			}
			if !strings.HasPrefix(strings.TrimSpace(strings.TrimPrefix(first, ";")), headerRowMarker) {
				continue
			}
			if !p.prepareHeader(fields) {
				logger.Error("cellref header validation failed, rejecting file", "file", name)
				return false
			}
		case first == "GSM_Site" || first == "WCDMA_Site" || first == "LTE_Site":
			if p.parseSiteRow(first, fields) {
				fs.NumResults++
				fs.NumResultsAndCandidates++
			}
		case first == "GSM_Cell" || first == "WCDMA_Cell" || first == "LTE_Cell":
			if p.parseSectorRow(fields) {
				fs.NumResultsAndCandidates++
			} else {
				ok = false
			}
		default:
			logger.Warn("unsupported cellref line", "token", first, "file", name)
			ok = false
		}
	}

	p.sites.Trigger()
	return ok
}

// prepareHeader replaces the active column index from a header row
func (p *CellrefParser) prepareHeader(fields []string) bool {
	elementType := strings.TrimSpace(fields[1])
	schema := schemaForElementType(elementType)
	if schema == nil {
		logger.Warn("unknown cellref element type in header", "elementType", elementType)
		p.index = NewColumnIndex()
		return true // not a validation failure, the next header may recover
	}

	header := make([]string, len(fields))
	copy(header, fields)
	header[0] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fields[0]), ";"))

	p.index = NewColumnIndex()
	return p.index.PrepareForHeader(header, schema)
}

// parseSiteRow accepts a site row only when name, id, latitude and
// longitude are all present; anything else is skipped with a log entry
// and does not fail the file.
func (p *CellrefParser) parseSiteRow(elementType string, fields []string) bool {
	id := p.index.StringValue(fields, "SiteID")
	name := p.index.StringValue(fields, "Name")
	lat := p.index.FloatValue(fields, "Latitude")
	lon := p.index.FloatValue(fields, "Longitude")

	if id == "" || name == "" || math.IsNaN(lat) || math.IsNaN(lon) {
		logger.Debug("skipping site row with missing data", "id", id, "name", name)
		return false
	}

	p.sites.Add(&models.Site{
		ID:         id,
		Name:       name,
		Technology: technologyForElementType(elementType),
		Position:   models.Position{Latitude: lat, Longitude: lon},
	}, true)
	return true
}

// parseSectorRow resolves the owning site through the canonical site
// reference key and attaches the sector. An unresolvable site fails
// the row (and the file flag) but parsing continues.
func (p *CellrefParser) parseSectorRow(fields []string) bool {
	siteID := p.index.StringValue(fields, SiteIDKey)
	if siteID == "" || p.sites.Get(siteID) == nil {
		logger.Warn("sector references unknown site", "siteId", siteID)
		return false
	}

	sector := models.Sector{
		ID:        p.index.StringValue(fields, "CellID"),
		Name:      p.index.StringValue(fields, "Name"),
		Azimuth:   models.Float(p.index.FloatValue(fields, "Azimuth")),
		Beamwidth: models.Float(p.index.FloatValue(fields, "Beamwidth")),
		Height:    models.Float(p.index.FloatValue(fields, "Height")),
		CellType:  cellTypeFromToken(p.index.StringValue(fields, "CellType")),

		CellIdentity: models.Float(p.index.IntValue(fields, "CellIdentity")),
		NetSegment:   models.Float(p.index.IntValue(fields, "NetSegment")),

		// Only the fields of the active technology schema resolve;
		// the others stay NaN.
		BCCH:           models.Float(p.index.IntValue(fields, "BCCH")),
		BSIC:           models.Float(p.index.IntValue(fields, "BSIC")),
		ScramblingCode: models.Float(p.index.IntValue(fields, "ScramblingCode")),
		UARFCN:         models.Float(p.index.IntValue(fields, "UARFCN")),
		EARFCN:         models.Float(p.index.IntValue(fields, "EARFCN")),
		PCI:            models.Float(p.index.IntValue(fields, "PCI")),
	}

	return p.sites.AppendSector(siteID, sector)
}
