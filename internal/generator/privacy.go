package generator

import (
	"strings"

	"pydocpdf/internal/extractor"
)

// hiddenDunders are module attributes that never appear in listings even
// though they look like public dunder names.
var hiddenDunders = map[string]bool{
	"__author__":   true,
	"__builtins__": true,
	"__cached__":   true,
	"__credits__":  true,
	"__date__":     true,
	"__doc__":      true,
	"__file__":     true,
	"__spec__":     true,
	"__loader__":   true,
	"__module__":   true,
	"__name__":     true,
	"__package__":  true,
	"__path__":     true,
	"__qualname__": true,
	"__slots__":    true,
	"__version__":  true,
}

// IsPrivateName reports whether a member is left out of listings: a leading
// underscore makes it private unless it is a dunder name, and hiddenDunders
// are always private.
func IsPrivateName(name string) bool {
	if hiddenDunders[name] {
		return true
	}
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return false
	}
	return strings.HasPrefix(name, "_")
}

func publicClasses(classes []*extractor.Class) []*extractor.Class {
	var out []*extractor.Class
	for _, cls := range classes {
		if !IsPrivateName(cls.Name) {
			out = append(out, cls)
		}
	}
	return out
}

func publicFunctions(functions []*extractor.Function) []*extractor.Function {
	var out []*extractor.Function
	for _, fn := range functions {
		if !IsPrivateName(fn.Name) {
			out = append(out, fn)
		}
	}
	return out
}
