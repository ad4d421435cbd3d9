package options

import (
	"reflect"
	"strings"
	"sync"
)

// accessor is a setter or getter method discovered on an options type.
type accessor struct {
	// name is the declared method name, e.g. "SetListenAddr".
	name string

	// index is the method index on the pointer type, valid for
	// reflect.Value.Method on any value of that type.
	index int

	// param is the setter's single parameter type. Nil for getters.
	// For a variadic setter it is the slice type.
	param reflect.Type

	// variadic marks a setter declared as SetX(v ...T).
	variadic bool

	// errOut is the index of a trailing error result, or -1.
	errOut int
}

// field is one exported-map entry of an options type.
type field struct {
	key      string
	index    []int
	exported bool
}

// accessorTable is the per-type registry of accessors and export fields.
// Setter and getter maps are keyed by the lower-cased method name.
type accessorTable struct {
	setters map[string]accessor
	getters map[string]accessor
	fields  []field
}

var (
	errorType     = reflect.TypeFor[error]()
	containerType = reflect.TypeFor[Container]()

	// containerMethods holds the lower-cased names of Container's methods.
	// Methods with these names are never option accessors, even when the
	// options type declares its own, so "strict" is never an option key.
	containerMethods = func() map[string]struct{} {
		m := make(map[string]struct{})
		t := reflect.PointerTo(containerType)
		for i := 0; i < t.NumMethod(); i++ {
			m[strings.ToLower(t.Method(i).Name)] = struct{}{}
		}
		return m
	}()

	tables sync.Map // reflect.Type → *accessorTable
)

// tableFor returns the cached accessor table for ptr, a pointer-to-struct
// type, building it on first use.
func tableFor(ptr reflect.Type) *accessorTable {
	if t, ok := tables.Load(ptr); ok {
		return t.(*accessorTable)
	}
	t, _ := tables.LoadOrStore(ptr, buildTable(ptr))
	return t.(*accessorTable)
}

func buildTable(ptr reflect.Type) *accessorTable {
	table := &accessorTable{
		setters: make(map[string]accessor),
		getters: make(map[string]accessor),
	}

	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		lower := strings.ToLower(m.Name)
		if _, promoted := containerMethods[lower]; promoted {
			continue
		}

		// Method types include the receiver as In(0).
		switch {
		case isAccessorName(m.Name, setterPrefix) && m.Type.NumIn() == 2:
			table.setters[lower] = accessor{
				name:     m.Name,
				index:    i,
				param:    m.Type.In(1),
				variadic: m.Type.IsVariadic(),
				errOut:   trailingError(m.Type),
			}
		case isAccessorName(m.Name, getterPrefix) && m.Type.NumIn() == 1 && m.Type.NumOut() > 0:
			errOut := trailingError(m.Type)
			if errOut == 0 {
				// A getter whose only result is an error has no value to return.
				continue
			}
			table.getters[lower] = accessor{
				name:   m.Name,
				index:  i,
				errOut: errOut,
			}
		}
	}

	for _, sf := range reflect.VisibleFields(ptr.Elem()) {
		if sf.Anonymous || sf.Tag.Get("option") == "-" {
			continue
		}
		if len(sf.Index) > 1 && embedsContainer(ptr.Elem(), sf.Index) {
			continue
		}
		table.fields = append(table.fields, field{
			key:      SnakeName(sf.Name),
			index:    sf.Index,
			exported: sf.IsExported(),
		})
	}

	return table
}

// isAccessorName reports whether name is prefix followed by at least one
// more character, e.g. "SetX" but not "Set".
func isAccessorName(name, prefix string) bool {
	return len(name) > len(prefix) && strings.HasPrefix(name, prefix)
}

// trailingError returns the index of the last result if it is an error,
// otherwise -1.
func trailingError(t reflect.Type) int {
	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		return n - 1
	}
	return -1
}

// embedsContainer reports whether the field path runs through an embedded
// Container.
func embedsContainer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		sf := t.Field(i)
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == containerType {
			return true
		}
		t = ft
	}
	return false
}
