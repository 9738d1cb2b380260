package stdlib_test

import (
	"reflect"
	"testing"

	"github.com/ReiseArnor/lpp/pkg/core/value"
	"github.com/ReiseArnor/lpp/pkg/stdlib"
)

func TestLongitud(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"cuatro", 6},
		{"hola mundo", 10},
		{"ñ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := stdlib.Longitud([]value.Value{&value.String{Value: tt.in}}, 1)
			i, ok := got.(*value.Integer)
			if !ok {
				t.Fatalf("expected *value.Integer, got %T (%s)", got, got.Inspect())
			}
			if i.Value != tt.want {
				t.Errorf("longitud(%q) = %d, want %d", tt.in, i.Value, tt.want)
			}
		})
	}
}

func TestLongitudErrors(t *testing.T) {
	tests := []struct {
		name string
		args []value.Value
		want string
	}{
		{
			"no arguments",
			nil,
			"Número incorrecto de argumentos para longitud, se recibieron 0, se esperaba 1, cerca de la línea 4",
		},
		{
			"two arguments",
			[]value.Value{&value.String{Value: "uno"}, &value.String{Value: "dos"}},
			"Número incorrecto de argumentos para longitud, se recibieron 2, se esperaba 1, cerca de la línea 4",
		},
		{
			"integer",
			[]value.Value{&value.Integer{Value: 1}},
			"Argumento para longitud sin soporte, se recibió INTEGER cerca de la línea 4",
		},
		{
			"null",
			[]value.Value{value.Null},
			"Argumento para longitud sin soporte, se recibió NULL cerca de la línea 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stdlib.Longitud(tt.args, 4)
			err, ok := got.(*value.Error)
			if !ok {
				t.Fatalf("expected *value.Error, got %T (%s)", got, got.Inspect())
			}
			if err.Message != tt.want {
				t.Errorf("got %q, want %q", err.Message, tt.want)
			}
			if err.Line != 4 {
				t.Errorf("expected line 4, got %d", err.Line)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	b, ok := stdlib.Lookup("longitud")
	if !ok {
		t.Fatal("longitud not registered")
	}
	if b.Name != "longitud" || b.Fn == nil {
		t.Errorf("unexpected builtin %+v", b)
	}
	if _, ok := stdlib.Lookup("imprimir"); ok {
		t.Error("unexpected builtin imprimir")
	}
	if got := stdlib.Names(); !reflect.DeepEqual(got, []string{"longitud"}) {
		t.Errorf("Names() = %v", got)
	}
}
