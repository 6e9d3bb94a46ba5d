// Package parser implements the file ingestion engine: column-index
// resolution against per-format schemas, the cellref line classifier
// and the result-file record parsers with streaming aggregation.
package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts loosely formatted numeric text to a float64.
// The first comma is replaced by a dot to cover European decimal
// notation. Empty or unparsable input yields NaN; NaN is the universal
// "no value" signal and never an error.
func ParseNumber(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return math.NaN()
	}
	text = strings.Replace(text, ",", ".", 1)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// splitLines splits file text into physical rows, tolerating CRLF
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
