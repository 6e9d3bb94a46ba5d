package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jengzang/cellmap-backend-go/internal/ingest"
	"github.com/jengzang/cellmap-backend-go/internal/metrics"
	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/parser"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// Loader orchestrates file loads into the shared collections. Batches
// are strictly sequential: one file is parsed to completion, and its
// batched collection notification fired, before the next file starts.
type Loader struct {
	sites    *store.Sites
	sessions *store.Sessions

	mu      sync.Mutex
	history []models.FileStatistics
}

// NewLoader creates a loader writing into the given collections
func NewLoader(sites *store.Sites, sessions *store.Sessions) *Loader {
	return &Loader{
		sites:    sites,
		sessions: sessions,
	}
}

// DetectFileType picks the file family from the filename extension
func DetectFileType(filename string) models.FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".axf":
		return models.FileTypeAxf
	case ".distances":
		return models.FileTypeAccuracy
	case ".cellref", ".txt":
		return models.FileTypeCellref
	}
	return models.FileTypeUnknown
}

// LoadFile parses one file's text into the collections. The returned
// flag is advisory: rows parsed before a failure stay in the model.
func (l *Loader) LoadFile(name string, kind models.FileType, text string) (models.FileStatistics, bool) {
	var fs models.FileStatistics
	var ok bool

	switch kind {
	case models.FileTypeCellref:
		ok = parser.NewCellrefParser(l.sites).Parse(name, text, &fs)
	case models.FileTypeAccuracy, models.FileTypeAxf:
		ok = parser.NewResultParser(l.sessions).Parse(name, kind, text, &fs)
	default:
		logger.Error("cannot load file of unknown type", "file", name)
		fs.Name = name
		fs.Type = models.FileTypeUnknown
		return fs, false
	}

	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	metrics.FilesLoadedTotal.WithLabelValues(string(kind), outcome).Inc()
	metrics.RowsParsedTotal.WithLabelValues(string(kind)).Add(float64(fs.NumResultsAndCandidates))
	metrics.ResultsTotal.WithLabelValues(string(kind)).Add(float64(fs.NumResults))

	l.mu.Lock()
	l.history = append(l.history, fs)
	l.mu.Unlock()

	logger.Info("file loaded", "file", name, "type", string(kind),
		"results", fs.NumResults, "rows", fs.NumResultsAndCandidates, "ok", ok)
	return fs, ok
}

// History returns the statistics of every load since the last reset
func (l *Loader) History() []models.FileStatistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := make([]models.FileStatistics, len(l.history))
	copy(history, l.history)
	return history
}

// BatchFile is one entry of a batch load
type BatchFile struct {
	Name string
	Type models.FileType
	Text string
}

// LoadBatch loads the files one after another. The returned flag is
// true only if every file loaded cleanly.
func (l *Loader) LoadBatch(files []BatchFile) (models.BatchStatistics, bool) {
	var batch models.BatchStatistics
	allOK := true
	for _, f := range files {
		fs, ok := l.LoadFile(f.Name, f.Type, f.Text)
		batch.Add(fs, ok)
		if !ok {
			allOK = false
		}
	}
	return batch, allOK
}

// LoadDirectory loads every recognizable file in a directory, in
// lexical order. Unrecognized extensions are skipped.
func (l *Loader) LoadDirectory(dir string) (models.BatchStatistics, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.BatchStatistics{}, fmt.Errorf("failed to read data directory: %w", err)
	}

	var files []BatchFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind := DetectFileType(entry.Name())
		if kind == models.FileTypeUnknown {
			logger.Debug("skipping file with unknown extension", "file", entry.Name())
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return models.BatchStatistics{}, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		text, encoding, err := ingest.DecodeText(raw)
		if err != nil {
			return models.BatchStatistics{}, fmt.Errorf("failed to decode %s: %w", entry.Name(), err)
		}
		logger.Debug("decoded data file", "file", entry.Name(), "encoding", encoding)

		files = append(files, BatchFile{Name: entry.Name(), Type: kind, Text: text})
	}

	batch, _ := l.LoadBatch(files)
	return batch, nil
}

// Reset drops all loaded data from both collections
func (l *Loader) Reset() {
	l.sites.Reset()
	l.sessions.Reset()

	l.mu.Lock()
	l.history = nil
	l.mu.Unlock()
}
