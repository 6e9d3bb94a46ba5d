package parser

import (
	"strings"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// recordParser consumes one data row of an already-detected format
type recordParser interface {
	parseRow(fields []string, fs *models.FileStatistics)
}

// ResultParser detects the concrete result-file format from the header
// row's field count and streams the data rows through the selected
// record parser.
type ResultParser struct {
	sessions *store.Sessions
}

// NewResultParser creates a parser populating the given session collection
func NewResultParser(sessions *store.Sessions) *ResultParser {
	return &ResultParser{sessions: sessions}
}

func separatorFor(kind models.FileType) (string, bool) {
	switch kind {
	case models.FileTypeAccuracy:
		return "\t", true
	case models.FileTypeAxf:
		return ",", true
	}
	return "", false
}

// Parse processes one result file. Format detection and header
// validation failures are file-level fatals (no rows parsed); short
// data rows are skipped with a log entry and, unlike the cellref
// parser's per-row AND, do not downgrade the returned flag. One
// batched add notification fires on the session collection when the
// row loop ends.
func (p *ResultParser) Parse(fileID string, kind models.FileType, text string, fs *models.FileStatistics) bool {
	fs.Name = fileID
	fs.Type = kind

	sep, known := separatorFor(kind)
	if !known {
		logger.Error("unsupported result file kind", "file", fileID, "kind", string(kind))
		return false
	}

	lines := splitLines(text)
	headerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		logger.Error("result file format not recognized: no header row", "file", fileID)
		return false
	}

	header := strings.Split(lines[headerAt], sep)
	record := p.selectRecordParser(fileID, kind, header)
	if record == nil {
		return false
	}

	for _, line := range lines[headerAt+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record.parseRow(strings.Split(line, sep), fs)
	}

	p.sessions.Trigger()
	return true
}

// selectRecordParser picks the concrete record parser from an ordered
// table of minimum header widths. Adding a future variant is one table
// entry.
func (p *ResultParser) selectRecordParser(fileID string, kind models.FileType, header []string) recordParser {
	width := len(header)

	type variant struct {
		kind      models.FileType
		minFields int
		build     func(index *ColumnIndex) recordParser
	}
	variants := []variant{
		{models.FileTypeAccuracy, accuracyMinFields, func(index *ColumnIndex) recordParser {
			return &accuracyV3Parser{sessions: p.sessions, fileID: fileID, index: index}
		}},
		{models.FileTypeAxf, axfMinFields, func(index *ColumnIndex) recordParser {
			return &axfParser{sessions: p.sessions, index: index}
		}},
	}

	if kind == models.FileTypeAccuracy && width == accuracyLegacyFields {
		logger.Error("legacy 9-column accuracy format is not supported", "file", fileID)
		return nil
	}

	for _, v := range variants {
		if v.kind != kind || width < v.minFields {
			continue
		}
		index := NewColumnIndex()
		if !index.PrepareForHeader(header, schemaForResultKind(kind)) {
			logger.Error("result file header validation failed", "file", fileID)
			return nil
		}
		return v.build(index)
	}

	logger.Error("result file format not recognized", "file", fileID, "headerFields", width)
	return nil
}

func schemaForResultKind(kind models.FileType) *Schema {
	if kind == models.FileTypeAxf {
		return axfSchema
	}
	return accuracySchema
}
