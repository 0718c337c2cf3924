package resolver

import (
	"errors"
	"fmt"
	"strings"

	"pydocpdf/internal/extractor"
)

var (
	// ErrSourceNotFound reports a target whose module file is missing or
	// whose path is malformed.
	ErrSourceNotFound = errors.New("source not found")
	// ErrLookupFailure reports a class or function segment absent from the module.
	ErrLookupFailure = errors.New("lookup failure")
)

// Target is a parsed "<dirs>/<module>[.<first>[.<second>]]" path.
type Target struct {
	FilePath   string
	ModuleName string
	First      string
	Second     string
	FullName   string // last "/" segment, used verbatim as the output base name
}

// ParseTarget splits a target path into its file location and trailing
// dotted segments. No filesystem access happens here.
func ParseTarget(target string) (Target, error) {
	if strings.TrimSpace(target) == "" {
		return Target{}, fmt.Errorf("%w: empty target", ErrSourceNotFound)
	}

	dirs, fullName := "", target
	if idx := strings.LastIndex(target, "/"); idx >= 0 {
		dirs, fullName = target[:idx+1], target[idx+1:]
	}

	segments := strings.Split(fullName, ".")
	if len(segments) > 3 {
		return Target{}, fmt.Errorf("%w: %q has more than two dotted segments after the module", ErrSourceNotFound, target)
	}
	for _, s := range segments {
		if s == "" {
			return Target{}, fmt.Errorf("%w: malformed target %q", ErrSourceNotFound, target)
		}
	}

	t := Target{
		FilePath:   dirs + segments[0] + extractor.SourceExtension,
		ModuleName: segments[0],
		FullName:   fullName,
	}
	if len(segments) >= 2 {
		t.First = segments[1]
	}
	if len(segments) == 3 {
		t.Second = segments[2]
	}
	return t, nil
}

func (t Target) String() string {
	s := t.ModuleName
	for _, seg := range []string{t.First, t.Second} {
		if seg != "" {
			s += "." + seg
		}
	}
	return s
}
