// Package ingest turns uploaded file bytes into parser-ready text.
// Cellref exports in particular arrive in a mix of UTF-8 and legacy
// single-byte encodings.
package ingest

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type textDecoder struct {
	name   string
	decode func([]byte) (string, error)
}

func singleByteDecoders() []textDecoder {
	return []textDecoder{
		{name: "latin1", decode: func(b []byte) (string, error) { return charmap.ISO8859_1.NewDecoder().String(string(b)) }},
		{name: "cp1250", decode: func(b []byte) (string, error) { return charmap.Windows1250.NewDecoder().String(string(b)) }},
		{name: "cp1252", decode: func(b []byte) (string, error) { return charmap.Windows1252.NewDecoder().String(string(b)) }},
	}
}

// controlPenalty counts decoded runes no text export contains:
// replacement runes, C1 controls, and C0 controls other than tab, CR
// and LF. Latin1 maps all 256 byte values to a rune and so never fails
// to decode; candidates are ranked by this score instead of by decode
// errors.
func controlPenalty(text string) int {
	penalty := 0
	for _, r := range text {
		switch {
		case r == utf8.RuneError:
			penalty++
		case r >= 0x80 && r <= 0x9f:
			penalty++
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			penalty++
		}
	}
	return penalty
}

// DecodeText decodes raw file bytes as UTF-8 when they are valid
// UTF-8, otherwise with the single-byte candidate scoring the fewest
// control characters. Ties go to the earlier candidate, so clean
// latin1 input never falls through to the Windows codepages.
func DecodeText(data []byte) (string, string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", "", fmt.Errorf("refusing to decode binary content")
	}
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	bestPenalty := -1
	var bestText, bestName string
	for _, dec := range singleByteDecoders() {
		text, err := dec.decode(data)
		if err != nil {
			continue
		}
		penalty := controlPenalty(text)
		if penalty == 0 {
			return text, dec.name, nil
		}
		if bestPenalty < 0 || penalty < bestPenalty {
			bestPenalty, bestText, bestName = penalty, text, dec.name
		}
	}
	if bestPenalty < 0 {
		return "", "", fmt.Errorf("unable to decode file with supported encodings")
	}
	return bestText, bestName, nil
}
