// Package validate checks constructor arguments of the stateful dashboard
// components and reports the first argument that does not have the
// expected shape.
package validate

import (
	"errors"
	"fmt"
	"reflect"

	"adminviews/internal/dom"
)

// ErrInvalidOption is wrapped by every *Error.
var ErrInvalidOption = errors.New("invalid option")

// Kind is the expected shape of a value.
type Kind int

const (
	String Kind = iota
	Bool
	Func
	Map
	Element
	Instance
)

func (k Kind) String() string {
	switch k {
	case String:
		return "non-empty string"
	case Bool:
		return "bool"
	case Func:
		return "function"
	case Map:
		return "map"
	case Element:
		return "element"
	case Instance:
		return "instance"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec declares the expected shape of one argument.
type Spec struct {
	Name  string
	Value any
	Kind  Kind
	// Tag restricts Element specs to elements with this tag.
	Tag string
	// Instance is the type an Instance spec's value must be assignable to.
	Instance reflect.Type
}

// Error describes the first violated Spec.
type Error struct {
	Name     string
	Expected string
	Got      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid option %q: expected %s, got %s", e.Name, e.Expected, e.Got)
}

func (e *Error) Unwrap() error {
	return ErrInvalidOption
}

// TypeOf returns the reflect.Type of T, for use as Spec.Instance.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// All checks specs in order and returns an *Error for the first one that
// does not hold.
func All(specs ...Spec) error {
	for _, s := range specs {
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}

func check(s Spec) error {
	fail := func(expected string) error {
		return &Error{Name: s.Name, Expected: expected, Got: describe(s.Value)}
	}

	switch s.Kind {
	case String:
		if v, ok := s.Value.(string); !ok || v == "" {
			return fail(s.Kind.String())
		}
	case Bool:
		if _, ok := s.Value.(bool); !ok {
			return fail(s.Kind.String())
		}
	case Func, Map:
		want := reflect.Func
		if s.Kind == Map {
			want = reflect.Map
		}
		v := reflect.ValueOf(s.Value)
		if !v.IsValid() || v.Kind() != want || v.IsNil() {
			return fail(s.Kind.String())
		}
	case Element:
		el, ok := s.Value.(*dom.Element)
		if !ok || el == nil {
			if s.Tag != "" {
				return fail(fmt.Sprintf("<%s> element", s.Tag))
			}
			return fail(s.Kind.String())
		}
		if s.Tag != "" && el.Tag != s.Tag {
			return &Error{Name: s.Name, Expected: fmt.Sprintf("<%s> element", s.Tag), Got: fmt.Sprintf("<%s> element", el.Tag)}
		}
	case Instance:
		if s.Instance == nil {
			return fmt.Errorf("validate: spec %q has no instance type", s.Name)
		}
		v := reflect.ValueOf(s.Value)
		if !v.IsValid() || isNil(v) || !v.Type().AssignableTo(s.Instance) {
			return fail(fmt.Sprintf("instance of %s", s.Instance))
		}
	default:
		return fmt.Errorf("validate: spec %q has unknown kind %v", s.Name, s.Kind)
	}
	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	if isNil(rv) {
		return fmt.Sprintf("nil %T", v)
	}
	if el, ok := v.(*dom.Element); ok {
		return fmt.Sprintf("<%s> element", el.Tag)
	}
	return fmt.Sprintf("%T", v)
}
