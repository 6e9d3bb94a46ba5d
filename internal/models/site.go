package models

// Technology identifies the radio access technology of a site or sector
type Technology string

const (
	TechUnknown Technology = "unknown"
	TechGSM     Technology = "GSM"
	TechWCDMA   Technology = "WCDMA"
	TechLTE     Technology = "LTE"
)

// CellType classifies the deployment type of a sector
type CellType string

const (
	CellTypeDefault   CellType = "default"
	CellTypeSmallCell CellType = "smallcell"
	CellTypeIndoor    CellType = "indoor"
)

// Position is a WGS84 coordinate pair
type Position struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Site represents a physical network location with one or more sectors
type Site struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Technology Technology `json:"technology" db:"technology"`
	Position   Position   `json:"position"`
	Sectors    []Sector   `json:"sectors"`
}

// Sector represents a single radio-serving cell belonging to a site.
// Technology-specific identity fields are NaN when they do not apply.
type Sector struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Azimuth   Float    `json:"azimuth" db:"azimuth"`
	Beamwidth Float    `json:"beamwidth" db:"beamwidth"`
	Height    Float    `json:"height" db:"height"`
	CellType  CellType `json:"cellType" db:"cell_type"`

	CellIdentity Float `json:"cellIdentity" db:"cell_identity"`
	// LAC for GSM, RNCID for WCDMA, TAC for LTE; -1 when the file omits it
	NetSegment Float `json:"netSegment" db:"net_segment"`

	// GSM
	BCCH Float `json:"bcch,omitempty" db:"bcch"`
	BSIC Float `json:"bsic,omitempty" db:"bsic"`

	// WCDMA
	ScramblingCode Float `json:"scramblingCode,omitempty" db:"scrambling_code"`
	UARFCN         Float `json:"uarfcn,omitempty" db:"uarfcn"`

	// LTE
	EARFCN Float `json:"earfcn,omitempty" db:"earfcn"`
	PCI    Float `json:"pci,omitempty" db:"pci"`
}
