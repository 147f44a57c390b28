package internal

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// probeSize is how many leading bytes are sniffed to tell text from binary.
const probeSize = 1024

// Classification is the verdict for a single filesystem entry.
type Classification int

const (
	Text Classification = iota
	Binary
	Executable
	Inaccessible
)

func (c Classification) String() string {
	switch c {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case Executable:
		return "executable"
	default:
		return "inaccessible"
	}
}

// ExecPolicy decides whether a regular file counts as executable.
// Injected so the platform branch lives in one place instead of the walk loop.
type ExecPolicy interface {
	Executable(path string, info os.FileInfo) bool
}

// PermBitsPolicy marks a file executable when any execute bit is set.
type PermBitsPolicy struct{}

func (PermBitsPolicy) Executable(_ string, info os.FileInfo) bool {
	return info.Mode().Perm()&0111 != 0
}

// ExtSetPolicy marks a file executable by its name suffix. Used where
// permission bits carry no meaning (Windows).
type ExtSetPolicy struct {
	exts map[string]struct{}
}

func NewExtSetPolicy(exts []string) *ExtSetPolicy {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = struct{}{}
	}
	return &ExtSetPolicy{exts: m}
}

func (p *ExtSetPolicy) Executable(path string, _ os.FileInfo) bool {
	_, ok := p.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DefaultExecutableExts is the fallback suffix set for ExtSetPolicy.
var DefaultExecutableExts = []string{
	".exe", ".bat", ".cmd", ".com", ".msi", ".scr",
}

// DefaultExecPolicy picks the policy for the given GOOS: extension set on
// Windows, permission bits elsewhere. exts == nil uses the default set.
func DefaultExecPolicy(goos string, exts []string) ExecPolicy {
	if goos == "windows" {
		if len(exts) == 0 {
			exts = DefaultExecutableExts
		}
		return NewExtSetPolicy(exts)
	}
	return PermBitsPolicy{}
}

// Classifier labels filesystem entries before the scan decides how to
// treat them.
type Classifier struct {
	exec ExecPolicy
}

func NewClassifier(exec ExecPolicy) *Classifier {
	if exec == nil {
		exec = DefaultExecPolicy(runtime.GOOS, nil)
	}
	return &Classifier{exec: exec}
}

// Classify stats the path (through symlinks), applies the exec policy and
// sniffs the leading bytes. It never returns an error: anything that cannot
// be probed is Inaccessible, and the caller logs and moves on.
func (c *Classifier) Classify(path string) Classification {
	info, err := os.Stat(path)
	if err != nil {
		return Inaccessible
	}
	if !info.Mode().IsRegular() {
		// FIFOs, sockets, devices: opening them for a probe could block,
		// and they are never scannable text.
		return Binary
	}
	if c.exec.Executable(path, info) {
		return Executable
	}

	f, err := os.Open(path)
	if err != nil {
		return Inaccessible
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		// a file shorter than the probe is a valid short probe
		return Inaccessible
	}
	if n == 0 {
		// Empty file is text by convention.
		return Text
	}
	for _, b := range buf[:n] {
		if isDisqualifying(b) {
			return Binary
		}
	}
	return Text
}

// isDisqualifying reports whether a byte marks the file as binary:
// C0 control characters outside {TAB, LF, CR}, and DEL. Bytes >= 0x80 are
// tolerated as presumed multi-byte text encoding.
func isDisqualifying(b byte) bool {
	if b == '\t' || b == '\n' || b == '\r' {
		return false
	}
	return b < 0x20 || b == 0x7f
}
