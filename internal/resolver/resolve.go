package resolver

import (
	"fmt"

	"pydocpdf/internal/extractor"
)

// Kind tells which entity a Resolved points at.
type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Resolved is the entity selected by a Target, plus the names needed for
// titles. ClassName is set only for methods.
type Resolved struct {
	Kind       Kind
	Module     *extractor.Module
	Class      *extractor.Class
	Function   *extractor.Function
	ClassName  string
	ModuleName string
}

// Resolve selects the entity named by t inside m.
//
// With one segment, classes are searched before top-level functions. With two
// segments the first must name a class and the second one of its functions;
// a missing class is not retried against functions. Duplicate names resolve
// to the first declaration.
func Resolve(m *extractor.Module, t Target) (*Resolved, error) {
	res := &Resolved{Module: m, ModuleName: m.Name}

	switch {
	case t.First == "":
		res.Kind = KindModule
		return res, nil

	case t.Second == "":
		if cls := FindClass(m.Classes, t.First); cls != nil {
			res.Kind, res.Class = KindClass, cls
			return res, nil
		}
		if fn := FindFunction(m.Functions, t.First); fn != nil {
			res.Kind, res.Function = KindFunction, fn
			return res, nil
		}
		return nil, fmt.Errorf("%w: no class or function %q in module %s", ErrLookupFailure, t.First, m.Name)

	default:
		cls := FindClass(m.Classes, t.First)
		if cls == nil {
			return nil, fmt.Errorf("%w: no class %q in module %s", ErrLookupFailure, t.First, m.Name)
		}
		fn := FindFunction(cls.Functions, t.Second)
		if fn == nil {
			return nil, fmt.Errorf("%w: no method %q in class %s of module %s", ErrLookupFailure, t.Second, cls.Name, m.Name)
		}
		res.Kind, res.Class, res.Function, res.ClassName = KindFunction, cls, fn, cls.Name
		return res, nil
	}
}

// FindClass returns the first class named name, or nil.
func FindClass(classes []*extractor.Class, name string) *extractor.Class {
	for _, cls := range classes {
		if cls.Name == name {
			return cls
		}
	}
	return nil
}

// FindFunction returns the first function named name, or nil.
func FindFunction(functions []*extractor.Function, name string) *extractor.Function {
	for _, fn := range functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
