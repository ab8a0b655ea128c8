package testtypes

import (
	"context"
	"reflect"
)

var (
	TypeInterfaceA = reflect.TypeFor[InterfaceA]()
	TypeInterfaceB = reflect.TypeFor[InterfaceB]()
	TypeInterfaceC = reflect.TypeFor[InterfaceC]()
	TypeInterfaceD = reflect.TypeFor[InterfaceD]()
	TypeStructAPtr = reflect.TypeFor[*StructA]()
	TypeOptionsPtr = reflect.TypeFor[*Options]()
)

// The four interfaces cover the supported disposal method signatures.

type InterfaceA interface {
	A()
	Dispose() error
}

type InterfaceB interface {
	B()
	Dispose()
}

type InterfaceC interface {
	C()
	DisposeAsync(ctx context.Context) error
}

type InterfaceD interface {
	D()
	DisposeAsync(ctx context.Context)
}

type StructA struct {
	Tag      any
	Disposed bool
}

func (*StructA) A() {}

func (s *StructA) Dispose() error {
	s.Disposed = true
	return nil
}

// AltStructA is a second implementation of InterfaceA, for enumerable
// registrations that need distinct produced types.
type AltStructA struct {
	Disposed bool
}

func (*AltStructA) A() {}

func (s *AltStructA) Dispose() error {
	s.Disposed = true
	return nil
}

type StructB struct {
	Disposed bool
}

func (*StructB) B() {}

func (s *StructB) Dispose() {
	s.Disposed = true
}

type StructC struct {
	Disposed bool
}

func (*StructC) C() {}

func (s *StructC) DisposeAsync(context.Context) error {
	s.Disposed = true
	return nil
}

type StructD struct {
	Disposed bool
}

func (*StructD) D() {}

func (s *StructD) DisposeAsync(context.Context) {
	s.Disposed = true
}

// FooService has no dependencies and no disposal capability.
type FooService interface {
	Foo()
}

type fooService struct{}

func (fooService) Foo() {}

func NewFooService() FooService {
	return fooService{}
}

// Options opts in to configuration hooks.
type Options struct {
	Values []string
}

func (*Options) Configurable() {}
