package internal

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Result is one file with at least one match. Immutable once emitted.
type Result struct {
	Path    string
	Name    string
	Matches []string
}

// FileScanner walks a directory tree, classifies every file and reports
// regex matches found in text files. One scan at a time per instance.
type FileScanner struct {
	pattern    *Pattern
	classifier *Classifier
	stats      ScanStats
}

// NewFileScanner creates a scanner for the given compiled pattern.
// A nil policy selects the platform default (permission bits on POSIX,
// extension set on Windows).
func NewFileScanner(pattern *Pattern, exec ExecPolicy) *FileScanner {
	return &FileScanner{
		pattern:    pattern,
		classifier: NewClassifier(exec),
	}
}

// Stats exposes the running counters. Safe to read concurrently while the
// scan runs; the reporter polls Visited for progress.
func (s *FileScanner) Stats() *ScanStats {
	return &s.stats
}

// Scan walks root depth-first and returns a lazy sequence of results.
// The sequence yields only files with at least one match; everything else
// is counted, logged and skipped. Breaking out of the range loop stops
// the traversal; the sequence is single-use. Only a missing or unreadable
// root fails here — per-file and per-subtree errors are recovered inside
// the walk.
//
// Directory symlinks are not followed (WalkDir does not descend into
// them), so symlink cycles cannot hang the traversal. File symlinks are
// classified and read through their target.
func (s *FileScanner) Scan(ctx context.Context, root string) (iter.Seq[Result], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	s.stats.Start()
	return func(yield func(Result) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if err != nil {
				// Unlistable directory or failed entry stat: skip that
				// branch, keep the siblings going.
				s.stats.Errors.Add(1)
				logrus.WithFields(logrus.Fields{"path": path, "err": err}).Warn("Skip: not traversable")
				return nil
			}
			if d.IsDir() {
				return nil
			}
			s.stats.Visited.Add(1)
			if !s.processFile(path, d.Name(), yield) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// processFile runs classification, reading and matching for one entry.
// Returns false only when the consumer stopped pulling results.
func (s *FileScanner) processFile(path, name string, yield func(Result) bool) bool {
	switch class := s.classifier.Classify(path); class {
	case Binary, Executable:
		s.stats.Skipped.Add(1)
		logrus.WithFields(logrus.Fields{"file": path, "class": class}).Info("Skip")
		return true
	case Inaccessible:
		s.stats.Skipped.Add(1)
		s.stats.Errors.Add(1)
		logrus.WithFields(logrus.Fields{"file": path}).Warn("Skip: inaccessible")
		return true
	}

	content, degraded, err := ReadText(path)
	if err != nil {
		// File vanished or turned unreadable between classify and read.
		s.stats.Skipped.Add(1)
		s.stats.Errors.Add(1)
		logrus.WithFields(logrus.Fields{"file": path, "err": err}).Warn("Skip: read failed")
		return true
	}
	if degraded {
		logrus.WithFields(logrus.Fields{"file": path}).Warn("Invalid UTF-8 replaced during read")
	}

	matches := s.pattern.FindAll(content)
	if len(matches) == 0 {
		return true
	}
	s.stats.Matched.Add(1)
	return yield(Result{Path: path, Name: name, Matches: matches})
}
