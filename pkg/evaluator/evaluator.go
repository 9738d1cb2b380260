package evaluator

import (
	"github.com/ReiseArnor/lpp/pkg/compiler/ast"
	"github.com/ReiseArnor/lpp/pkg/core/value"
	"github.com/ReiseArnor/lpp/pkg/stdlib"
)

const (
	msgWrongArgs      = "Cantidad errónea de argumentos para la función cerca de la línea %d, se esperaban %d pero se obtuvo %d"
	msgNotAFunction   = "No es una function: %s cerca de la línea %d"
	msgTypeMismatch   = "Discrepancia de tipos: %s %s %s cerca de la línea %d"
	msgUnknownPrefix  = "Operador desconocido: %s%s cerca de la línea %d"
	msgUnknownInfix   = "Operador desconocido: %s %s %s cerca de la línea %d"
	msgUnknownIdent   = "Identificador sin definir: \"%s\" cerca de la línea %d"
	msgDivisionByZero = "División entre cero cerca de la línea %d"
	msgGasExhausted   = "Límite de ejecución agotado cerca de la línea %d"
	msgDepthExceeded  = "Límite de recursión excedido cerca de la línea %d"
)

// Evaluator walks an AST against an environment. An Evaluator is not safe
// for concurrent use; give each goroutine its own.
type Evaluator struct {
	gasLimit int
	maxDepth int
	builtins map[string]*value.Builtin

	gas   int
	depth int
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs node in env with the default limits.
func Evaluate(node ast.Node, env *value.Environment) value.Value {
	return New().Eval(node, env)
}

// Eval evaluates node in env. The gas budget is refilled on every call, so
// a REPL session gets a fresh budget per input. The result is never nil and
// never a ReturnValue when node is a *ast.Program.
func (e *Evaluator) Eval(node ast.Node, env *value.Environment) value.Value {
	e.gas = e.gasLimit
	e.depth = 0
	return e.eval(node, env)
}

func (e *Evaluator) eval(node ast.Node, env *value.Environment) value.Value {
	if node == nil {
		return value.Null
	}

	if e.gasLimit > 0 {
		if e.gas <= 0 {
			line := lineOf(node)
			return value.NewError(line, msgGasExhausted, line)
		}
		e.gas--
	}

	switch n := node.(type) {
	case *ast.Program:
		return e.evalProgram(n, env)
	case *ast.Block:
		return e.evalBlock(n, env)
	case *ast.ExpressionStatement:
		return e.eval(n.Expression, env)
	case *ast.LetStatement:
		return e.evalBinding(n.Name, n.Value, env)
	case *ast.AssignStatement:
		return e.evalBinding(n.Name, n.Value, env)
	case *ast.ReturnStatement:
		v := e.eval(n.ReturnValue, env)
		if isSignal(v) {
			return v
		}
		return &value.ReturnValue{Value: v}

	case *ast.IntegerLiteral:
		return &value.Integer{Value: n.Value}
	case *ast.BooleanLiteral:
		return value.NativeBool(n.Value)
	case *ast.StringLiteral:
		return &value.String{Value: n.Value}
	case *ast.NullLiteral:
		return value.Null
	case *ast.Identifier:
		return e.evalIdentifier(n, env)

	case *ast.PrefixExpression:
		right := e.eval(n.Right, env)
		if isSignal(right) {
			return right
		}
		return evalPrefix(n.Operator, right, n.Token.Line)
	case *ast.InfixExpression:
		left := e.eval(n.Left, env)
		if isSignal(left) {
			return left
		}
		right := e.eval(n.Right, env)
		if isSignal(right) {
			return right
		}
		return evalInfix(n.Operator, left, right, n.Token.Line)
	case *ast.IfExpression:
		return e.evalIf(n, env)
	case *ast.FunctionLiteral:
		return &value.Function{Parameters: n.Parameters, Body: n.Body, Env: env}
	case *ast.CallExpression:
		return e.evalCall(n, env)
	}

	return value.Null
}

func (e *Evaluator) evalProgram(program *ast.Program, env *value.Environment) value.Value {
	var result value.Value = value.Null

	for _, stmt := range program.Statements {
		result = e.eval(stmt, env)

		switch r := result.(type) {
		case *value.ReturnValue:
			return unwrapReturn(r)
		case *value.Error:
			return r
		}
	}
	return result
}

// evalBlock stops at the first ReturnValue or Error and hands it back still
// wrapped, so the enclosing call or program can see it.
func (e *Evaluator) evalBlock(block *ast.Block, env *value.Environment) value.Value {
	var result value.Value = value.Null
	if block == nil {
		return result
	}

	for _, stmt := range block.Statements {
		result = e.eval(stmt, env)

		if isSignal(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalBinding(name *ast.Identifier, expr ast.Expression, env *value.Environment) value.Value {
	v := e.eval(expr, env)
	if isSignal(v) || name == nil {
		return v
	}
	return env.Set(name.Value, v)
}

func (e *Evaluator) evalIdentifier(ident *ast.Identifier, env *value.Environment) value.Value {
	if v, ok := env.Get(ident.Value); ok {
		return v
	}
	if b, ok := e.builtins[ident.Value]; ok {
		return b
	}
	if b, ok := stdlib.Lookup(ident.Value); ok {
		return b
	}
	return value.NewError(ident.Token.Line, msgUnknownIdent, ident.Value, ident.Token.Line)
}

func (e *Evaluator) evalIf(expr *ast.IfExpression, env *value.Environment) value.Value {
	cond := e.eval(expr.Condition, env)
	if isSignal(cond) {
		return cond
	}

	if value.IsTruthy(cond) {
		return e.evalBlock(expr.Consequence, env)
	}
	if expr.Alternative != nil {
		return e.evalBlock(expr.Alternative, env)
	}
	return value.Null
}

func (e *Evaluator) evalCall(call *ast.CallExpression, env *value.Environment) value.Value {
	fn := e.eval(call.Function, env)
	if isSignal(fn) {
		return fn
	}

	args := make([]value.Value, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		v := e.eval(a, env)
		if isSignal(v) {
			return v
		}
		args = append(args, v)
	}

	return e.applyFunction(fn, args, call.Token.Line)
}

func (e *Evaluator) applyFunction(fn value.Value, args []value.Value, line int) value.Value {
	switch fn := fn.(type) {
	case *value.Function:
		if len(fn.Parameters) != len(args) {
			return value.NewError(line, msgWrongArgs, line, len(fn.Parameters), len(args))
		}
		if e.maxDepth > 0 && e.depth >= e.maxDepth {
			return value.NewError(line, msgDepthExceeded, line)
		}

		scope := value.NewEnclosedEnvironment(fn.Env)
		for i, p := range fn.Parameters {
			scope.Set(p.Value, args[i])
		}

		e.depth++
		result := e.evalBlock(fn.Body, scope)
		e.depth--
		return unwrapReturn(result)

	case *value.Builtin:
		if fn.Fn == nil {
			return value.Null
		}
		// Host builtins may return nil; the evaluator never hands nil on.
		result := fn.Fn(args, line)
		if result == nil {
			return value.Null
		}
		return unwrapReturn(result)

	default:
		return value.NewError(line, msgNotAFunction, fn.Type(), line)
	}
}

// isSignal reports whether v ends evaluation of the enclosing construct. An
// Error or ReturnValue is never used as an operand, argument or binding.
func isSignal(v value.Value) bool {
	if v == nil {
		return false
	}
	t := v.Type()
	return t == value.TypeError || t == value.TypeReturn
}

func unwrapReturn(v value.Value) value.Value {
	if r, ok := v.(*value.ReturnValue); ok {
		if r.Value == nil {
			return value.Null
		}
		return r.Value
	}
	return v
}

func evalPrefix(op string, right value.Value, line int) value.Value {
	switch op {
	case "!":
		return value.NativeBool(!value.IsTruthy(right))
	case "-":
		if i, ok := right.(*value.Integer); ok {
			return &value.Integer{Value: -i.Value}
		}
	}
	return value.NewError(line, msgUnknownPrefix, op, right.Type(), line)
}

func evalInfix(op string, left, right value.Value, line int) value.Value {
	switch {
	case left.Type() == value.TypeInteger && right.Type() == value.TypeInteger:
		return evalIntegerInfix(op, left.(*value.Integer).Value, right.(*value.Integer).Value, line)
	case left.Type() == value.TypeString && right.Type() == value.TypeString:
		return evalStringInfix(op, left.(*value.String).Value, right.(*value.String).Value, line)
	case left.Type() != right.Type():
		return value.NewError(line, msgTypeMismatch, left.Type(), op, right.Type(), line)
	}

	// Same non-numeric, non-string type: only equality on the singletons.
	if op == "==" || op == "!=" {
		var equal bool
		switch left.Type() {
		case value.TypeBoolean:
			equal = left.(*value.Boolean).Value == right.(*value.Boolean).Value
		case value.TypeNull:
			equal = true
		default:
			return value.NewError(line, msgUnknownInfix, left.Type(), op, right.Type(), line)
		}
		return value.NativeBool(equal == (op == "=="))
	}
	return value.NewError(line, msgUnknownInfix, left.Type(), op, right.Type(), line)
}

func evalIntegerInfix(op string, l, r int64, line int) value.Value {
	switch op {
	case "+":
		return &value.Integer{Value: l + r}
	case "-":
		return &value.Integer{Value: l - r}
	case "*":
		return &value.Integer{Value: l * r}
	case "/":
		if r == 0 {
			return value.NewError(line, msgDivisionByZero, line)
		}
		return &value.Integer{Value: l / r}
	case "<":
		return value.NativeBool(l < r)
	case ">":
		return value.NativeBool(l > r)
	case "==":
		return value.NativeBool(l == r)
	case "!=":
		return value.NativeBool(l != r)
	}
	return value.NewError(line, msgUnknownInfix, value.TypeInteger, op, value.TypeInteger, line)
}

func evalStringInfix(op string, l, r string, line int) value.Value {
	switch op {
	case "+":
		return &value.String{Value: l + r}
	case "==":
		return value.NativeBool(l == r)
	case "!=":
		return value.NativeBool(l != r)
	}
	return value.NewError(line, msgUnknownInfix, value.TypeString, op, value.TypeString, line)
}

// lineOf reports the source line a node starts on, for errors raised
// before the node is dispatched.
func lineOf(node ast.Node) int {
	switch n := node.(type) {
	case *ast.Program:
		if len(n.Statements) > 0 {
			return lineOf(n.Statements[0])
		}
		return 1
	case *ast.Block:
		return n.Token.Line
	case *ast.ExpressionStatement:
		return n.Token.Line
	case *ast.LetStatement:
		return n.Token.Line
	case *ast.AssignStatement:
		return n.Token.Line
	case *ast.ReturnStatement:
		return n.Token.Line
	case *ast.Identifier:
		return n.Token.Line
	case *ast.IntegerLiteral:
		return n.Token.Line
	case *ast.BooleanLiteral:
		return n.Token.Line
	case *ast.StringLiteral:
		return n.Token.Line
	case *ast.NullLiteral:
		return n.Token.Line
	case *ast.PrefixExpression:
		return n.Token.Line
	case *ast.InfixExpression:
		return n.Token.Line
	case *ast.IfExpression:
		return n.Token.Line
	case *ast.FunctionLiteral:
		return n.Token.Line
	case *ast.CallExpression:
		return n.Token.Line
	}
	return 0
}
