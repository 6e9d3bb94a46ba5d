package parser

import (
	"math"
	"strings"

	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// FieldType declares how a column's raw text is coerced
type FieldType int

const (
	FieldString FieldType = iota
	FieldFloat
	FieldInt
)

// Field declares one known column of a file format. Key is the
// internal lookup name when it differs from the header token, which
// lets technology-specific header names resolve under one key.
type Field struct {
	Name     string
	Key      string
	Type     FieldType
	Required bool
	// Raw default applied when the column is absent or empty
	Default string
}

func (f Field) key() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// Schema is the set of known fields of one file-format version
type Schema struct {
	Name   string
	Fields []Field
}

// ColumnIndex maps field keys to physical column positions for the
// currently active schema. Column order and count vary between format
// versions; this indirection keeps row parsing free of version
// branches.
type ColumnIndex struct {
	schema  *Schema
	columns map[string]int
}

// NewColumnIndex creates an index with no active schema; every lookup
// resolves to the field default until a header is prepared.
func NewColumnIndex() *ColumnIndex {
	return &ColumnIndex{columns: make(map[string]int)}
}

// PrepareForHeader resets the index and records the column position of
// every known field found in the header row. Header tokens are
// trimmed; a leading "#" on column 0 is stripped. Returns the result
// of required-field validation.
func (ci *ColumnIndex) PrepareForHeader(header []string, schema *Schema) bool {
	ci.schema = schema
	ci.columns = make(map[string]int)

	for pos, token := range header {
		token = strings.TrimSpace(token)
		if pos == 0 {
			token = strings.TrimSpace(strings.TrimPrefix(token, "#"))
		}
		for _, field := range schema.Fields {
			if field.Name == token {
				ci.columns[field.key()] = pos
				break
			}
		}
	}

	return ci.validateHeader()
}

// validateHeader reports whether every required field was found,
// logging each missing one. A failed validation rejects the whole
// file, not individual rows.
func (ci *ColumnIndex) validateHeader() bool {
	ok := true
	for _, field := range ci.schema.Fields {
		if !field.Required {
			continue
		}
		if _, found := ci.columns[field.key()]; !found {
			logger.Error("required column missing from header",
				"schema", ci.schema.Name, "field", field.Name)
			ok = false
		}
	}
	return ok
}

// Has reports whether the active header contained the field
func (ci *ColumnIndex) Has(key string) bool {
	_, found := ci.columns[key]
	return found
}

func (ci *ColumnIndex) fieldByKey(key string) *Field {
	if ci.schema == nil {
		return nil
	}
	for i := range ci.schema.Fields {
		if ci.schema.Fields[i].key() == key {
			return &ci.schema.Fields[i]
		}
	}
	return nil
}

func (ci *ColumnIndex) raw(record []string, key string) (string, bool) {
	pos, found := ci.columns[key]
	if !found || pos >= len(record) {
		return "", false
	}
	return record[pos], true
}

// StringValue reads a field as trimmed text, falling back to the
// field's declared default when the column is absent or empty.
func (ci *ColumnIndex) StringValue(record []string, key string) string {
	if value, found := ci.raw(record, key); found {
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	if field := ci.fieldByKey(key); field != nil {
		return field.Default
	}
	return ""
}

// FloatValue reads a field as a float. Absent columns and unparsable
// values resolve to the declared default, or NaN if there is none.
func (ci *ColumnIndex) FloatValue(record []string, key string) float64 {
	if value, found := ci.raw(record, key); found {
		if parsed := ParseNumber(value); !math.IsNaN(parsed) {
			return parsed
		}
	}
	if field := ci.fieldByKey(key); field != nil && field.Default != "" {
		return ParseNumber(field.Default)
	}
	return math.NaN()
}

// IntValue reads a field as an integer-valued float, truncating any
// fraction. NaN propagates like in FloatValue.
func (ci *ColumnIndex) IntValue(record []string, key string) float64 {
	value := ci.FloatValue(record, key)
	if math.IsNaN(value) {
		return value
	}
	return math.Trunc(value)
}
