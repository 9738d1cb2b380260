package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ReiseArnor/lpp/pkg/compiler/ast"
)

// Type is the runtime tag of a Value.
type Type uint8

const (
	TypeInteger Type = iota
	TypeBoolean
	TypeNull
	TypeReturn
	TypeError
	TypeFunction
	TypeString
	TypeBuiltin
)

var typeNames = [...]string{
	TypeInteger:  "INTEGER",
	TypeBoolean:  "BOOLEAN",
	TypeNull:     "NULL",
	TypeReturn:   "RETURN",
	TypeError:    "ERROR",
	TypeFunction: "FUNCTION",
	TypeString:   "STRING",
	TypeBuiltin:  "BUILTIN",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// Value is anything an expression can evaluate to.
type Value interface {
	Type() Type
	// Inspect renders the value for display in the REPL.
	Inspect() string
}

// Integer is a signed 64-bit integer with wrapping arithmetic.
type Integer struct {
	Value int64
}

func (i *Integer) Type() Type      { return TypeInteger }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Boolean values are only ever True or False; compare them by identity.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type { return TypeBoolean }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "verdadero"
	}
	return "falso"
}

// String holds UTF-8 text. Inspect shows it without quotes.
type String struct {
	Value string
}

func (s *String) Type() Type      { return TypeString }
func (s *String) Inspect() string { return s.Value }

// NullValue is the type of the Null singleton.
type NullValue struct{}

func (n *NullValue) Type() Type      { return TypeNull }
func (n *NullValue) Inspect() string { return "nulo" }

// Error is a runtime error. It travels through evaluation as a value and
// stops the enclosing program or block.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Type() Type      { return TypeError }
func (e *Error) Inspect() string { return e.Message }

// ReturnValue wraps the operand of regresa until it reaches a call boundary
// or the top of the program.
type ReturnValue struct {
	Value Value
}

func (r *ReturnValue) Type() Type { return TypeReturn }
func (r *ReturnValue) Inspect() string {
	if r.Value == nil {
		return Null.Inspect()
	}
	return r.Value.Inspect()
}

// Function is a closure: parameters, body and the environment it was
// created in.
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.Block
	Env        *Environment
}

func (f *Function) Type() Type { return TypeFunction }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Value
	}
	return "procedimiento(" + strings.Join(params, ", ") + ") {...}"
}

// BuiltinFunction implements a host-provided function. line is the source
// line of the call, for error messages. A nil result evaluates to Null.
type BuiltinFunction func(args []Value, line int) Value

// Builtin is a named host function callable from programs.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() Type      { return TypeBuiltin }
func (b *Builtin) Inspect() string { return "builtin function" }

var (
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
	Null  = &NullValue{}
)

// NativeBool maps a Go bool onto the shared True or False.
func NativeBool(b bool) *Boolean {
	if b {
		return True
	}
	return False
}

// IsTruthy reports false for False and Null and true for everything else.
func IsTruthy(v Value) bool {
	switch v.Type() {
	case TypeNull:
		return false
	case TypeBoolean:
		return v.(*Boolean).Value
	default:
		return true
	}
}

// NewError builds an Error whose message is format applied to args.
func NewError(line int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: line}
}

// IsError reports whether v is a runtime error. A nil v is not.
func IsError(v Value) bool {
	return v != nil && v.Type() == TypeError
}
