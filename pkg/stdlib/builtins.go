package stdlib

import (
	"sort"

	"github.com/ReiseArnor/lpp/pkg/core/value"
)

// Builtins is the global function table. It is built once at package
// initialization and never modified, so it is safe to share between
// evaluators running on different goroutines.
var Builtins = map[string]*value.Builtin{
	"longitud": {Name: "longitud", Fn: Longitud},
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (*value.Builtin, bool) {
	b, ok := Builtins[name]
	return b, ok
}

// Names lists the registered builtins, sorted.
func Names() []string {
	names := make([]string, 0, len(Builtins))
	for name := range Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Longitud: ( string -- integer ) length in bytes.
func Longitud(args []value.Value, line int) value.Value {
	if len(args) != 1 {
		return value.NewError(line, "Número incorrecto de argumentos para longitud, se recibieron %d, se esperaba 1, cerca de la línea %d", len(args), line)
	}

	s, ok := args[0].(*value.String)
	if !ok {
		return value.NewError(line, "Argumento para longitud sin soporte, se recibió %s cerca de la línea %d", args[0].Type(), line)
	}
	return &value.Integer{Value: int64(len(s.Value))}
}
