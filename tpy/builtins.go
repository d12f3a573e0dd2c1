// builtins.go — the fixed builtin function table. Builtins receive already
// evaluated arguments and shadow user definitions of the same name. Arity or
// type mismatches degrade to None (or a documented sentinel), never an error.
package tpy

import (
	"fmt"
	"strconv"
	"strings"
)

type builtinFn func(ip *Interpreter, args []Value) Value

func builtinTable() map[string]builtinFn {
	return map[string]builtinFn{
		"print":      builtinPrint,
		"input":      builtinInput,
		"len":        builtinLen,
		"str":        builtinStr,
		"int":        builtinInt,
		"abs":        builtinAbs,
		"max":        builtinMax,
		"min":        builtinMin,
		"range":      builtinRange,
		"type":       builtinType,
		"pow":        builtinPow,
		"sum":        builtinSum,
		"join":       builtinJoin,
		"split":      builtinSplit,
		"substr":     builtinSubstr,
		"find":       builtinFind,
		"startswith": builtinStartswith,
		"endswith":   builtinEndswith,
		"tolower":    builtinTolower,
		"toupper":    builtinToupper,
		"ord":        builtinOrd,
		"chr":        builtinChr,
		"slice":      builtinSlice,
		"push":       builtinPush,
		"concat":     builtinConcat,
	}
}

// builtinPrint renders each argument, space-separated, then a newline.
func builtinPrint(ip *Interpreter, args []Value) Value {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = FormatValue(v)
	}
	fmt.Fprintln(ip.stdout, strings.Join(parts, " "))
	return None
}

// builtinInput optionally prints a string or int prompt, then reads one line
// from the interpreter's input. End of input yields "".
func builtinInput(ip *Interpreter, args []Value) Value {
	if len(args) > 0 {
		switch args[0].Type {
		case StrType:
			fmt.Fprint(ip.stdout, args[0].S)
		case IntType:
			fmt.Fprintf(ip.stdout, "%d", args[0].I)
		}
	}
	line, err := ip.stdin.ReadString('\n')
	if err != nil && line == "" {
		return Str("")
	}
	return Str(strings.TrimRight(line, "\r\n"))
}

func builtinLen(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	switch args[0].Type {
	case StrType:
		return Int(int64(len(args[0].S)))
	case ListType:
		return Int(int64(len(args[0].List)))
	}
	return None
}

func builtinStr(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	switch args[0].Type {
	case IntType:
		return Str(strconv.FormatInt(args[0].I, 10))
	case StrType:
		return args[0]
	}
	return Str("None")
}

// cSpace matches the character class strtoll skips and stops on.
func cSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

// builtinInt converts with strtoll semantics: leading whitespace and an
// optional sign, then digits, saturating on overflow; the conversion only
// counts if the character after the digits is end-of-string or whitespace.
// Everything else, including non-str non-int values, is 0.
func builtinInt(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	v := args[0]
	if v.Type == IntType {
		return v
	}
	if v.Type == StrType {
		s := v.S
		i := 0
		for i < len(s) && cSpace(s[i]) {
			i++
		}
		start := i
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		digits := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i > digits && (i == len(s) || cSpace(s[i])) {
			return Int(parseIntSaturating(s[start:i]))
		}
	}
	return Int(0)
}

func builtinAbs(ip *Interpreter, args []Value) Value {
	if len(args) != 1 || args[0].Type != IntType {
		return None
	}
	if args[0].I < 0 {
		return Int(-args[0].I)
	}
	return args[0]
}

// builtinMax ignores non-int arguments past the first; a non-int first
// argument makes the whole call None.
func builtinMax(ip *Interpreter, args []Value) Value {
	if len(args) == 0 || args[0].Type != IntType {
		return None
	}
	best := args[0]
	for _, v := range args[1:] {
		if v.Type == IntType && v.I > best.I {
			best = v
		}
	}
	return best
}

func builtinMin(ip *Interpreter, args []Value) Value {
	if len(args) == 0 || args[0].Type != IntType {
		return None
	}
	best := args[0]
	for _, v := range args[1:] {
		if v.Type == IntType && v.I < best.I {
			best = v
		}
	}
	return best
}

// builtinRange returns the sequence rendered as a comma-joined string, not a
// list. A zero step produces "".
func builtinRange(ip *Interpreter, args []Value) Value {
	var start, stop, step int64 = 0, 0, 1
	for _, v := range args {
		if v.Type != IntType {
			return None
		}
	}
	switch len(args) {
	case 1:
		stop = args[0].I
	case 2:
		start, stop = args[0].I, args[1].I
	case 3:
		start, stop, step = args[0].I, args[1].I, args[2].I
	default:
		return None
	}

	var b strings.Builder
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(i, 10))
	}
	return Str(b.String())
}

// builtinType reports "int", "str", "list" or "none"; wrong arity is also
// "none", not None.
func builtinType(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return Str("none")
	}
	switch args[0].Type {
	case IntType:
		return Str("int")
	case StrType:
		return Str("str")
	case ListType:
		return Str("list")
	default:
		return Str("none")
	}
}

func builtinPow(ip *Interpreter, args []Value) Value {
	if len(args) != 2 || args[0].Type != IntType || args[1].Type != IntType {
		return None
	}
	return Int(ipow(args[0].I, args[1].I))
}

// builtinSum sums the int elements of a single list argument, otherwise the
// int arguments themselves; non-ints are skipped.
func builtinSum(ip *Interpreter, args []Value) Value {
	var acc int64
	if len(args) == 1 && args[0].Type == ListType {
		for _, v := range args[0].List {
			if v.Type == IntType {
				acc += v.I
			}
		}
		return Int(acc)
	}
	for _, v := range args {
		if v.Type == IntType {
			acc += v.I
		}
	}
	return Int(acc)
}

// builtinJoin glues the list's string elements with sep; a non-str separator
// acts as "", non-str elements as "".
func builtinJoin(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	sep := ""
	if args[0].Type == StrType {
		sep = args[0].S
	}
	if args[1].Type != ListType {
		return None
	}
	var b strings.Builder
	n := len(args[1].List)
	for i, it := range args[1].List {
		if it.Type == StrType {
			b.WriteString(it.S)
		}
		if i+1 < n {
			b.WriteString(sep)
		}
	}
	return Str(b.String())
}

// builtinSplit splits on sep (default " "; an empty or non-str separator also
// falls back to " "). No trailing empty field: "a,b," splits to [a, b].
func builtinSplit(ip *Interpreter, args []Value) Value {
	if len(args) < 1 || len(args) > 2 {
		return None
	}
	if args[0].Type != StrType {
		return None
	}
	sep := " "
	if len(args) == 2 && args[1].Type == StrType && args[1].S != "" {
		sep = args[1].S
	}
	var out []Value
	s := args[0].S
	for len(s) > 0 {
		q := strings.Index(s, sep)
		if q < 0 {
			out = append(out, Str(s))
			break
		}
		out = append(out, Str(s[:q]))
		s = s[q+len(sep):]
	}
	return List(out)
}

func clampi(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// builtinSubstr clamps start into [0, len] and length into [0, len-start].
// Index arguments pass through a 32-bit truncation before clamping.
func builtinSubstr(ip *Interpreter, args []Value) Value {
	if len(args) != 3 {
		return None
	}
	if args[0].Type != StrType || args[1].Type != IntType || args[2].Type != IntType {
		return None
	}
	s := args[0].S
	l := int64(len(s))
	a := clampi(int64(int32(args[1].I)), 0, l)
	n := clampi(int64(int32(args[2].I)), 0, l-a)
	return Str(s[a : a+n])
}

// builtinFind returns the byte index of sub in s, -1 when absent or when
// either argument is not a string.
func builtinFind(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	if args[0].Type != StrType || args[1].Type != StrType {
		return Int(-1)
	}
	return Int(int64(strings.Index(args[0].S, args[1].S)))
}

func builtinStartswith(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	if args[0].Type != StrType || args[1].Type != StrType {
		return Int(0)
	}
	return boolInt(strings.HasPrefix(args[0].S, args[1].S))
}

func builtinEndswith(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	if args[0].Type != StrType || args[1].Type != StrType {
		return Int(0)
	}
	return boolInt(strings.HasSuffix(args[0].S, args[1].S))
}

// ASCII-only case mapping, byte by byte.
func asciiMapCase(s string, lower bool) string {
	b := []byte(s)
	for i, c := range b {
		if lower && c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		} else if !lower && c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func builtinTolower(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	if args[0].Type != StrType {
		return None
	}
	return Str(asciiMapCase(args[0].S, true))
}

func builtinToupper(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	if args[0].Type != StrType {
		return None
	}
	return Str(asciiMapCase(args[0].S, false))
}

// builtinOrd returns the first byte of a string; a non-str or empty argument
// is 0, not None.
func builtinOrd(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	if args[0].Type != StrType || args[0].S == "" {
		return Int(0)
	}
	return Int(int64(args[0].S[0]))
}

// builtinChr builds a one-byte string from the low byte of i; byte zero
// yields the empty string.
func builtinChr(ip *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return None
	}
	if args[0].Type != IntType {
		return None
	}
	b := byte(args[0].I & 0xFF)
	if b == 0 {
		return Str("")
	}
	return Str(string([]byte{b}))
}

// builtinSlice copies elements [start, end) with Python-style negative
// indices, clamped; a reversed range is empty. Index arguments pass through
// the same 32-bit truncation as substr.
func builtinSlice(ip *Interpreter, args []Value) Value {
	if len(args) != 3 {
		return None
	}
	if args[0].Type != ListType || args[1].Type != IntType || args[2].Type != IntType {
		return None
	}
	n := int64(len(args[0].List))
	a, b := int64(int32(args[1].I)), int64(int32(args[2].I))
	if a < 0 {
		a += n
	}
	if b < 0 {
		b += n
	}
	a = clampi(a, 0, n)
	b = clampi(b, 0, n)
	if b < a {
		b = a
	}
	out := make([]Value, 0, b-a)
	out = append(out, args[0].List[a:b]...)
	return List(out)
}

// builtinPush returns a copy of the list with x appended; the original is
// untouched.
func builtinPush(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	if args[0].Type != ListType {
		return None
	}
	return List(append(listCopy(args[0]), args[1]))
}

func builtinConcat(ip *Interpreter, args []Value) Value {
	if len(args) != 2 {
		return None
	}
	if args[0].Type != ListType || args[1].Type != ListType {
		return None
	}
	out := make([]Value, 0, len(args[0].List)+len(args[1].List))
	out = append(out, args[0].List...)
	out = append(out, args[1].List...)
	return List(out)
}
