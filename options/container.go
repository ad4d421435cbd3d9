package options

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// Container is the base of an options type. Embed it in a struct, bind it
// to the struct (New does this), and declare Set<Name>/Get<Name> methods
// for every option the type supports.
//
// The zero value is an unbound container in strict mode. An unbound
// container has no accessors. A bound container must not be copied.
//
// The names of Container's own methods (Bind, Load, Export, Set, Get,
// Isset, Has, Unset, SetStrict, Strict) are reserved. An options type that
// declares a method with one of these names shadows the Container method,
// and the declared method is not an option accessor: a custom
// SetStrict(bool) neither creates a "strict" option nor toggles strict mode
// when called directly.
type Container struct {
	// owner is the pointer to the embedding struct.
	owner reflect.Value

	table *accessorTable

	// lenient is the inverse of strict mode, so the zero value is strict.
	lenient bool
}

// Binder is implemented by every pointer to a struct embedding Container,
// and only by those.
type Binder interface {
	Bind(owner any)
	container() *Container
}

// Option configures a Container during New.
type Option func(*Container)

// WithStrict sets strict mode before the initial options are loaded.
func WithStrict(strict bool) Option {
	return func(c *Container) {
		c.SetStrict(strict)
	}
}

// New allocates a T, binds its embedded Container, applies opts and, when
// initial is non-nil, loads it with Load.
//
//	opts, err := options.New[ServerOptions](map[string]any{"listen_addr": ":80"})
func New[T any, P interface {
	*T
	Binder
}](initial any, opts ...Option) (P, error) {
	p := P(new(T))
	p.Bind(p)

	c := p.container()
	for _, opt := range opts {
		opt(c)
	}

	if initial != nil {
		if err := c.Load(initial); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (c *Container) container() *Container { return c }

// Bind attaches the container to owner, the pointer to the struct that
// embeds it. Accessors and export fields are resolved against owner's type.
// Bind panics if owner is not a non-nil pointer to a struct.
func (c *Container) Bind(owner any) {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("options: Bind requires a non-nil pointer to a struct, got %T", owner))
	}
	c.owner = v
	c.table = tableFor(v.Type())
}

// SetStrict turns strict mode on or off.
func (c *Container) SetStrict(strict bool) {
	c.lenient = !strict
}

// Strict reports whether unknown keys passed to Set are an error.
func (c *Container) Strict() bool {
	return !c.lenient
}

// Load sets every pair of src in order. src may be Pairs, []Pair, an
// iter.Seq2[string, any], any Iterable, or a map with string keys. A Go map
// has no order of its own, so its keys are applied in sorted order.
//
// Any other src fails with ErrInvalidArgument. Load stops at the first
// failing Set and returns its error.
func (c *Container) Load(src any) error {
	seq, err := pairsOf(src)
	if err != nil {
		return err
	}
	for key, value := range seq {
		if err := c.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func pairsOf(src any) (iter.Seq2[string, any], error) {
	switch s := src.(type) {
	case Iterable:
		return s.All(), nil
	case []Pair:
		return Pairs(s).All(), nil
	case iter.Seq2[string, any]:
		return s, nil
	case func(func(string, any) bool):
		return s, nil
	case map[string]any:
		return func(yield func(string, any) bool) {
			for _, k := range slices.Sorted(maps.Keys(s)) {
				if !yield(k, s[k]) {
					return
				}
			}
		}, nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		return func(yield func(string, any) bool) {
			for _, k := range keys {
				if !yield(k.String(), rv.MapIndex(k).Interface()) {
					return
				}
			}
		}, nil
	}

	return nil, fmt.Errorf("%w: parameter provided to Load must be a map or an iterable of key/value pairs, got %T",
		ErrInvalidArgument, src)
}

// Export returns the options type's fields as ordered pairs. Fields appear
// in declaration order, including fields promoted from embedded structs.
// Names are converted with SnakeName. Exported fields are read directly and
// unexported ones through their getter; an unexported field without a
// working getter is left out, as is any field tagged `option:"-"`.
func (c *Container) Export() Pairs {
	out := Pairs{}
	if c.table == nil {
		return out
	}

	elem := c.owner.Elem()
	for _, f := range c.table.fields {
		if f.exported {
			fv, err := elem.FieldByIndexErr(f.index)
			if err == nil && fv.CanInterface() {
				out = append(out, Pair{Key: f.key, Value: fv.Interface()})
				continue
			}
		}
		if v, err := c.Get(f.key); err == nil {
			out = append(out, Pair{Key: f.key, Value: v})
		}
	}
	return out
}

// Set calls the setter for key with value, converted to the setter's
// parameter type. A variadic setter receives value as its whole slice.
//
// A missing setter is an ErrNoSuchSetter in strict mode and a no-op
// otherwise. A value that cannot be converted is an ErrInvalidArgument.
// An error returned by the setter is wrapped and returned.
func (c *Container) Set(key string, value any) error {
	name := SetterName(key)
	m, ok := c.setters()[strings.ToLower(name)]
	if !ok {
		if c.lenient {
			return nil
		}
		return noSuchSetter(key, name)
	}

	arg, err := convertValue(value, m.param)
	if err != nil {
		return invalidValue(key, m.name, "%v", err)
	}

	fn := c.owner.Method(m.index)
	var out []reflect.Value
	if m.variadic {
		out = fn.CallSlice([]reflect.Value{arg})
	} else {
		out = fn.Call([]reflect.Value{arg})
	}
	if err := resultError(out, m.errOut); err != nil {
		return fmt.Errorf("option %q: %w", key, err)
	}
	return nil
}

// Get calls the getter for key and returns its result. A missing getter is
// an ErrNoSuchGetter whatever the strict mode.
func (c *Container) Get(key string) (any, error) {
	name := GetterName(key)
	m, ok := c.getters()[strings.ToLower(name)]
	if !ok {
		return nil, noSuchGetter(key, name)
	}

	out := c.owner.Method(m.index).Call(nil)
	if err := resultError(out, m.errOut); err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	return out[0].Interface(), nil
}

// Isset reports whether the getter for key returns a non-nil value. Errors
// from Get, including ErrNoSuchGetter, are returned rather than reported
// as false. Use Has when a missing getter should simply mean false.
func (c *Container) Isset(key string) (bool, error) {
	v, err := c.Get(key)
	if err != nil {
		return false, err
	}
	return !isNil(v), nil
}

// Has is like Isset but reports false instead of returning an error.
func (c *Container) Has(key string) bool {
	ok, err := c.Isset(key)
	return err == nil && ok
}

// Unset sets key to nil. If the option has no setter, or its setter does
// not accept nil, Unset fails with ErrInvalidArgument. The original failure
// is kept in AccessorError.Cause.
func (c *Container) Unset(key string) error {
	err := c.Set(key, nil)
	if err == nil {
		return nil
	}

	setter := SetterName(key)
	var ae *AccessorError
	if errors.As(err, &ae) && ae.Accessor != "" {
		setter = ae.Accessor
	}
	return notUnsettable(key, setter, err)
}

func (c *Container) setters() map[string]accessor {
	if c.table == nil {
		return nil
	}
	return c.table.setters
}

func (c *Container) getters() map[string]accessor {
	if c.table == nil {
		return nil
	}
	return c.table.getters
}

func resultError(out []reflect.Value, errOut int) error {
	if errOut < 0 || out[errOut].IsNil() {
		return nil
	}
	return out[errOut].Interface().(error)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return nilable(rv.Type()) && rv.IsNil()
}
