package internal

import (
	"fmt"
	"regexp"
)

// Pattern is a compiled search pattern plus its source text for logs and
// error messages. Immutable for the duration of a scan.
type Pattern struct {
	re  *regexp.Regexp
	src string
}

// CompilePattern compiles src, failing fast so a bad pattern is rejected
// before any traversal starts.
func CompilePattern(src string) (*Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", src, err)
	}
	return &Pattern{re: re, src: src}, nil
}

func (p *Pattern) String() string { return p.src }

// FindAll returns every non-overlapping match in content, left to right.
// The value is always the full match (group 0), never a sub-group.
// regexp advances past zero-length matches, so patterns like `x*` yield a
// finite sequence. Pure: same input, same output.
func (p *Pattern) FindAll(content string) []string {
	return p.re.FindAllString(content, -1)
}
