package di

import (
	"reflect"
)

// Built-in service types recognized before any descriptor lookup.
var (
	typeServiceProvider = reflect.TypeFor[ServiceProvider]()
	typeServiceQuery    = reflect.TypeFor[ServiceQuery]()
	typeScopeFactory    = reflect.TypeFor[ScopeFactory]()
	typeLogSink         = reflect.TypeFor[LogSink]()
)
