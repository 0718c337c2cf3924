package extractor

// Module is the documentation view of a single Python source file.
type Module struct {
	Name      string      `json:"name"`
	Docstring *string     `json:"docstring,omitempty"`
	Classes   []*Class    `json:"classes"`
	Functions []*Function `json:"functions"`
}

// Class is a class declaration, or a synthetic class built from a data-record
// (namedtuple) assignment. Functions is nil for data records.
type Class struct {
	Name      string      `json:"name"`
	Docstring *string     `json:"docstring,omitempty"`
	Functions []*Function `json:"functions"`
}

// Function is a module-level function or a method.
type Function struct {
	Name      string   `json:"name"`
	Signature []string `json:"signature"` // Parameter names only
	Docstring *string  `json:"docstring,omitempty"`
}

// IsRecord reports whether the class was synthesized from a data-record declaration.
func (c *Class) IsRecord() bool {
	return c.Functions == nil
}

// Doc returns the docstring or "" when absent.
func (m *Module) Doc() string { return deref(m.Docstring) }

// Doc returns the docstring or "" when absent.
func (c *Class) Doc() string { return deref(c.Docstring) }

// Doc returns the docstring or "" when absent.
func (f *Function) Doc() string { return deref(f.Docstring) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
