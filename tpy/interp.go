// interp.go — tree-walking evaluator: environments, statement flow and the
// single operator-policy points applyBinary/applyUnary.
package tpy

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Env is a name-to-value frame with an optional parent for lookups. Set
// updates an existing binding in the current frame or defines a new one
// there; it never writes through to the parent.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates an empty frame chained to parent (nil for a root frame).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Set binds name in this frame, shadowing any parent binding.
func (e *Env) Set(name string, v Value) {
	e.table[name] = v
}

// Get resolves name in this frame, then outward through parents.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return None, false
}

// flow tells a statement's caller whether execution proceeds normally or a
// return is unwinding toward the enclosing call.
type flow int

const (
	flowNormal flow = iota
	flowReturn
)

// Interpreter executes parsed modules against a persistent global
// environment. All I/O goes through the injected streams, so embedders and
// tests can capture it.
type Interpreter struct {
	Global *Env

	funcs    map[string]*Stmt
	builtins map[string]builtinFn

	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewInterpreter returns an interpreter wired to the process streams.
func NewInterpreter() *Interpreter {
	return NewInterpreterIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewInterpreterIO returns an interpreter reading input() lines from in and
// writing print output to out and diagnostics to errw.
func NewInterpreterIO(in io.Reader, out, errw io.Writer) *Interpreter {
	ip := &Interpreter{
		Global: NewEnv(nil),
		funcs:  make(map[string]*Stmt),
		stdin:  bufio.NewReader(in),
		stdout: out,
		stderr: errw,
	}
	ip.builtins = builtinTable()
	return ip
}

// RunSource lexes, parses and evaluates one source buffer against the
// interpreter's persistent state. A parse failure reports "parse failed" and
// returns 1 without executing anything; otherwise the module runs and the
// result is 0.
func (ip *Interpreter) RunSource(src string) int {
	lx := NewLexer(src)
	r := ParseModule(lx, ip.stderr)
	if !r.OK {
		fmt.Fprintf(ip.stderr, "parse failed\n")
		return 1
	}
	return ip.EvalModule(&r.Mod)
}

// EvalModule registers every top-level function definition, then executes the
// module's statements in order against the global environment. Later
// definitions of the same name replace earlier ones silently. A top-level
// return evaluates its expression and execution continues with the next
// statement.
func (ip *Interpreter) EvalModule(m *Module) int {
	for _, s := range m.Body {
		if s != nil && s.Kind == FuncDefStmt {
			ip.funcs[s.FName] = s
		}
	}
	for _, s := range m.Body {
		ip.execStmt(s, ip.Global)
	}
	return 0
}

func (ip *Interpreter) execStmt(s *Stmt, env *Env) (flow, Value) {
	if s == nil {
		return flowNormal, None
	}
	switch s.Kind {
	case ExprStmt:
		ip.evalExpr(s.Expr, env)
		return flowNormal, None

	case ReturnStmt:
		return flowReturn, ip.evalExpr(s.Expr, env)

	case FuncDefStmt:
		// Registration already happened for top-level defs; a def executed
		// inside a body (re)binds here.
		ip.funcs[s.FName] = s
		return flowNormal, None

	case AssignStmt:
		env.Set(s.LHS, ip.evalExpr(s.Expr, env))
		return flowNormal, None

	case ForStmt:
		iter := ip.evalExpr(s.Expr, env)
		if iter.Type != ListType {
			return flowNormal, None
		}
		for _, item := range iter.List {
			env.Set(s.LHS, item)
			if fl, v := ip.execStmt(s.Body, env); fl == flowReturn {
				return fl, v
			}
		}
		return flowNormal, None

	case IfStmt:
		for i, cond := range s.Conds {
			if Truthy(ip.evalExpr(cond, env)) {
				return ip.execStmt(s.Bodies[i], env)
			}
		}
		if s.Else != nil {
			return ip.execStmt(s.Else, env)
		}
		return flowNormal, None

	default:
		return flowNormal, None
	}
}

// evalExpr is total: expressions that cannot be evaluated yield None.
func (ip *Interpreter) evalExpr(e *Expr, env *Env) Value {
	if e == nil {
		return None
	}
	switch e.Kind {
	case NumberExpr:
		return Int(e.IVal)

	case StringExpr:
		return Str(e.SVal)

	case IdentExpr:
		if v, ok := env.Get(e.SVal); ok {
			return v
		}
		return None

	case ParenExpr:
		return ip.evalExpr(e.A, env)

	case ListExpr:
		items := make([]Value, 0, len(e.Args))
		for _, a := range e.Args {
			items = append(items, ip.evalExpr(a, env))
		}
		return List(items)

	case SubscriptExpr:
		container := ip.evalExpr(e.A, env)
		index := ip.evalExpr(e.B, env)
		if container.Type != ListType || index.Type != IntType {
			return None
		}
		if index.I < 0 || index.I >= int64(len(container.List)) {
			return None
		}
		return container.List[index.I]

	case UnOpExpr:
		return applyUnary(e.SVal, ip.evalExpr(e.A, env))

	case BinOpExpr:
		return applyBinary(e.SVal, ip.evalExpr(e.A, env), ip.evalExpr(e.B, env))

	case CallExpr:
		return ip.evalCall(e, env)

	default:
		return None
	}
}

// evalCall dispatches a call: builtins by exact name first, then user
// functions. A call to an unknown name yields None; a user call with the
// wrong argument count reports a TypeError and yields None without running
// the body. User calls execute in a fresh root frame holding only the
// parameters, so bodies see their arguments and nothing from the caller.
func (ip *Interpreter) evalCall(call *Expr, env *Env) Value {
	if call.A == nil || call.A.Kind != IdentExpr {
		return None
	}
	name := call.A.SVal

	if fn, ok := ip.builtins[name]; ok {
		args := make([]Value, 0, len(call.Args))
		for _, a := range call.Args {
			args = append(args, ip.evalExpr(a, env))
		}
		return fn(ip, args)
	}

	def, ok := ip.funcs[name]
	if !ok {
		return None
	}
	if len(call.Args) != len(def.Params) {
		fmt.Fprintf(ip.stderr, "TypeError: %s expects %d args, got %d\n",
			name, len(def.Params), len(call.Args))
		return None
	}

	frame := NewEnv(nil)
	for i, p := range def.Params {
		frame.Set(p, ip.evalExpr(call.Args[i], env))
	}
	if fl, v := ip.execStmt(def.Body, frame); fl == flowReturn {
		return v
	}
	return None
}

// ipow raises base to exp by squaring with wraparound; negative exponents
// yield 0.
func ipow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	var result int64 = 1
	for exp > 0 {
		if exp&1 != 0 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// applyBinary is the one place binary operator semantics live. Mixed-type
// string rules come first, then the full integer table, then string
// equality; every other combination is None. Division and modulo by zero
// yield 0.
func applyBinary(op string, a, b Value) Value {
	// String concatenation, including int operands stringified.
	if op == "+" {
		switch {
		case a.Type == StrType && b.Type == StrType:
			return Str(a.S + b.S)
		case a.Type == IntType && b.Type == StrType:
			return Str(FormatValue(a) + b.S)
		case a.Type == StrType && b.Type == IntType:
			return Str(a.S + FormatValue(b))
		}
	}

	// String repetition; a non-positive count is not a string.
	if op == "*" {
		if a.Type == StrType && b.Type == IntType && b.I > 0 {
			return Str(repeatString(a.S, b.I))
		}
		if a.Type == IntType && b.Type == StrType && a.I > 0 {
			return Str(repeatString(b.S, a.I))
		}
	}

	if a.Type == IntType && b.Type == IntType {
		x, y := a.I, b.I
		switch op {
		case "+":
			return Int(x + y)
		case "-":
			return Int(x - y)
		case "*":
			return Int(x * y)
		case "/", "//":
			if y == 0 {
				return Int(0)
			}
			return Int(x / y)
		case "%":
			if y == 0 {
				return Int(0)
			}
			return Int(x % y)
		case "**":
			return Int(ipow(x, y))
		case "==":
			return boolInt(x == y)
		case "!=":
			return boolInt(x != y)
		case "<":
			return boolInt(x < y)
		case "<=":
			return boolInt(x <= y)
		case ">":
			return boolInt(x > y)
		case ">=":
			return boolInt(x >= y)
		case "&":
			return Int(x & y)
		case "|":
			return Int(x | y)
		case "^":
			return Int(x ^ y)
		case "&&":
			return boolInt(x != 0 && y != 0)
		case "||":
			return boolInt(x != 0 || y != 0)
		}
		return None
	}

	if a.Type == StrType && b.Type == StrType {
		switch op {
		case "==":
			return boolInt(a.S == b.S)
		case "!=":
			return boolInt(a.S != b.S)
		}
	}

	return None
}

// applyUnary handles ~ and ! over ints; anything else is None.
func applyUnary(op string, a Value) Value {
	if a.Type != IntType {
		return None
	}
	switch op {
	case "~":
		return Int(^a.I)
	case "!":
		return boolInt(a.I == 0)
	}
	return None
}

func repeatString(s string, n int64) string {
	var out []byte
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
