package internal

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ReadText materializes the whole file as UTF-8 text. Invalid byte
// sequences are replaced with U+FFFD instead of aborting the read;
// degraded reports whether any substitution happened so the caller can
// log a quality warning. Only failure to read the file at all is an error.
//
// Whole-file read is deliberate: matches may span arbitrary offsets, and
// the scan is sequential and single-pass, so the memory cost is bounded
// by one file at a time.
func ReadText(path string) (content string, degraded bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	if utf8.Valid(raw) {
		return string(raw), false, nil
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	return string(decoded), true, nil
}
