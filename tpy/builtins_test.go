// builtins_test.go
package tpy

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"
)

func bcall(t *testing.T, name string, args ...Value) Value {
	t.Helper()
	ip := NewInterpreterIO(strings.NewReader(""), io.Discard, io.Discard)
	fn, ok := ip.builtins[name]
	if !ok {
		t.Fatalf("no builtin %q", name)
	}
	return fn(ip, args)
}

func wantVal(t *testing.T, got, want Value) {
	t.Helper()
	if !valEq(got, want) {
		t.Fatalf("want %#v, got %#v", want, got)
	}
}

func Test_Builtin_TableIsComplete(t *testing.T) {
	names := []string{
		"print", "input", "len", "str", "int", "abs", "max", "min", "range",
		"type", "pow", "sum", "join", "split", "substr", "find", "startswith",
		"endswith", "tolower", "toupper", "ord", "chr", "slice", "push", "concat",
	}
	table := builtinTable()
	if len(table) != len(names) {
		t.Fatalf("want %d builtins, got %d", len(names), len(table))
	}
	for _, n := range names {
		if _, ok := table[n]; !ok {
			t.Fatalf("missing builtin %q", n)
		}
	}
}

func Test_Builtin_Print(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreterIO(strings.NewReader(""), &out, io.Discard)
	builtinPrint(ip, []Value{Int(1), Str("a"), List([]Value{Int(2)}), None})
	if out.String() != "1 a [2] None\n" {
		t.Fatalf("got %q", out.String())
	}
}

func Test_Builtin_Len(t *testing.T) {
	wantVal(t, bcall(t, "len", Str("abc")), Int(3))
	wantVal(t, bcall(t, "len", List([]Value{Int(1), Int(2)})), Int(2))
	wantVal(t, bcall(t, "len", Int(5)), None)
	wantVal(t, bcall(t, "len"), None)
}

func Test_Builtin_Str(t *testing.T) {
	wantVal(t, bcall(t, "str", Int(-42)), Str("-42"))
	wantVal(t, bcall(t, "str", Str("x")), Str("x"))
	wantVal(t, bcall(t, "str", None), Str("None"))
	wantVal(t, bcall(t, "str", List(nil)), Str("None"))
	wantVal(t, bcall(t, "str", Int(1), Int(2)), None)
}

func Test_Builtin_Int(t *testing.T) {
	wantVal(t, bcall(t, "int", Int(7)), Int(7))
	wantVal(t, bcall(t, "int", Str("42")), Int(42))
	wantVal(t, bcall(t, "int", Str("  -13")), Int(-13))
	wantVal(t, bcall(t, "int", Str("+5")), Int(5))
	// conversion stops at whitespace but rejects any other trailing junk
	wantVal(t, bcall(t, "int", Str("12 x")), Int(12))
	wantVal(t, bcall(t, "int", Str("12abc")), Int(0))
	wantVal(t, bcall(t, "int", Str("12.5")), Int(0))
	wantVal(t, bcall(t, "int", Str("")), Int(0))
	wantVal(t, bcall(t, "int", Str("abc")), Int(0))
	wantVal(t, bcall(t, "int", Str("99999999999999999999")), Int(math.MaxInt64))
	wantVal(t, bcall(t, "int", None), Int(0))
	wantVal(t, bcall(t, "int", List(nil)), Int(0))
}

func Test_Builtin_Abs(t *testing.T) {
	wantVal(t, bcall(t, "abs", Int(-9)), Int(9))
	wantVal(t, bcall(t, "abs", Int(9)), Int(9))
	wantVal(t, bcall(t, "abs", Str("-9")), None)
}

func Test_Builtin_MaxMin(t *testing.T) {
	wantVal(t, bcall(t, "max", Int(3), Int(9), Int(5)), Int(9))
	wantVal(t, bcall(t, "min", Int(3), Int(9), Int(5)), Int(3))
	// a non-int first argument poisons the call; later non-ints are skipped
	wantVal(t, bcall(t, "max", Str("3"), Int(9)), None)
	wantVal(t, bcall(t, "max", Int(3), Str("9")), Int(3))
	wantVal(t, bcall(t, "max"), None)
}

func Test_Builtin_RangeReturnsString(t *testing.T) {
	wantVal(t, bcall(t, "range", Int(4)), Str("0, 1, 2, 3"))
	wantVal(t, bcall(t, "range", Int(2), Int(5)), Str("2, 3, 4"))
	wantVal(t, bcall(t, "range", Int(5), Int(0), Int(-2)), Str("5, 3, 1"))
	wantVal(t, bcall(t, "range", Int(1), Int(5), Int(0)), Str(""))
	wantVal(t, bcall(t, "range", Str("4")), None)
	wantVal(t, bcall(t, "range"), None)
}

func Test_Builtin_Type(t *testing.T) {
	wantVal(t, bcall(t, "type", Int(1)), Str("int"))
	wantVal(t, bcall(t, "type", Str("")), Str("str"))
	wantVal(t, bcall(t, "type", List(nil)), Str("list"))
	wantVal(t, bcall(t, "type", None), Str("none"))
	// wrong arity is also "none", not None
	wantVal(t, bcall(t, "type"), Str("none"))
	wantVal(t, bcall(t, "type", Int(1), Int(2)), Str("none"))
}

func Test_Builtin_Pow(t *testing.T) {
	wantVal(t, bcall(t, "pow", Int(3), Int(4)), Int(81))
	wantVal(t, bcall(t, "pow", Int(3), Int(-1)), Int(0))
	wantVal(t, bcall(t, "pow", Str("3"), Int(4)), None)
}

func Test_Builtin_Sum(t *testing.T) {
	wantVal(t, bcall(t, "sum", List([]Value{Int(1), Str("x"), Int(2)})), Int(3))
	wantVal(t, bcall(t, "sum", Int(1), Int(2), Str("x"), Int(3)), Int(6))
	wantVal(t, bcall(t, "sum"), Int(0))
}

func Test_Builtin_Join(t *testing.T) {
	xs := List([]Value{Str("a"), Str("b"), Str("c")})
	wantVal(t, bcall(t, "join", Str("-"), xs), Str("a-b-c"))
	// non-str separator acts as "", non-str elements as ""
	wantVal(t, bcall(t, "join", Int(0), xs), Str("abc"))
	wantVal(t, bcall(t, "join", Str(","), List([]Value{Str("a"), Int(1)})), Str("a,"))
	wantVal(t, bcall(t, "join", Str(","), Str("ab")), None)
}

func Test_Builtin_Split(t *testing.T) {
	wantVal(t, bcall(t, "split", Str("a b c")),
		List([]Value{Str("a"), Str("b"), Str("c")}))
	wantVal(t, bcall(t, "split", Str("a,,b"), Str(",")),
		List([]Value{Str("a"), Str(""), Str("b")}))
	// no trailing empty field
	wantVal(t, bcall(t, "split", Str("a,b,"), Str(",")),
		List([]Value{Str("a"), Str("b")}))
	// empty or non-str separator falls back to " "
	wantVal(t, bcall(t, "split", Str("a b"), Str("")),
		List([]Value{Str("a"), Str("b")}))
	wantVal(t, bcall(t, "split", Str("")), List(nil))
	wantVal(t, bcall(t, "split", Int(1)), None)
}

func Test_Builtin_Substr(t *testing.T) {
	wantVal(t, bcall(t, "substr", Str("hello"), Int(1), Int(3)), Str("ell"))
	wantVal(t, bcall(t, "substr", Str("hello"), Int(-4), Int(2)), Str("he"))
	wantVal(t, bcall(t, "substr", Str("hello"), Int(3), Int(99)), Str("lo"))
	wantVal(t, bcall(t, "substr", Str("hello"), Int(9), Int(2)), Str(""))
	wantVal(t, bcall(t, "substr", Int(1), Int(0), Int(1)), None)
}

func Test_Builtin_IndexArgumentsTruncateTo32Bits(t *testing.T) {
	// 2^32 wraps to 0, 2^32+1 wraps to 1
	wantVal(t, bcall(t, "substr", Str("hello"), Int(1<<32), Int(3)), Str("hel"))
	xs := List([]Value{Int(0), Int(1), Int(2), Int(3)})
	wantVal(t, bcall(t, "slice", xs, Int(1<<32+1), Int(3)), List([]Value{Int(1), Int(2)}))
}

func Test_Builtin_Find(t *testing.T) {
	wantVal(t, bcall(t, "find", Str("hello"), Str("ll")), Int(2))
	wantVal(t, bcall(t, "find", Str("hello"), Str("zz")), Int(-1))
	wantVal(t, bcall(t, "find", Int(1), Str("x")), Int(-1))
}

func Test_Builtin_StartsEndsWith(t *testing.T) {
	wantVal(t, bcall(t, "startswith", Str("hello"), Str("he")), Int(1))
	wantVal(t, bcall(t, "startswith", Str("hello"), Str("lo")), Int(0))
	wantVal(t, bcall(t, "endswith", Str("hello"), Str("lo")), Int(1))
	wantVal(t, bcall(t, "endswith", Str("lo"), Str("hello")), Int(0))
	wantVal(t, bcall(t, "startswith", Int(1), Str("x")), Int(0))
}

func Test_Builtin_CaseMappingIsASCII(t *testing.T) {
	wantVal(t, bcall(t, "tolower", Str("AbC-9")), Str("abc-9"))
	wantVal(t, bcall(t, "toupper", Str("AbC-9")), Str("ABC-9"))
	wantVal(t, bcall(t, "tolower", Int(1)), None)
}

func Test_Builtin_OrdChr(t *testing.T) {
	wantVal(t, bcall(t, "ord", Str("Abc")), Int(65))
	// non-str or empty is 0, not None
	wantVal(t, bcall(t, "ord", Str("")), Int(0))
	wantVal(t, bcall(t, "ord", Int(65)), Int(0))
	wantVal(t, bcall(t, "chr", Int(65)), Str("A"))
	// only the low byte counts; byte zero is the empty string
	wantVal(t, bcall(t, "chr", Int(65+256)), Str("A"))
	wantVal(t, bcall(t, "chr", Int(0)), Str(""))
	wantVal(t, bcall(t, "chr", Str("65")), None)
}

func Test_Builtin_Slice(t *testing.T) {
	xs := List([]Value{Int(0), Int(1), Int(2), Int(3)})
	wantVal(t, bcall(t, "slice", xs, Int(1), Int(3)), List([]Value{Int(1), Int(2)}))
	wantVal(t, bcall(t, "slice", xs, Int(-2), Int(4)), List([]Value{Int(2), Int(3)}))
	wantVal(t, bcall(t, "slice", xs, Int(3), Int(1)), List([]Value{}))
	wantVal(t, bcall(t, "slice", Int(1), Int(0), Int(1)), None)
}

func Test_Builtin_PushDoesNotMutate(t *testing.T) {
	orig := List([]Value{Int(1), Int(2)})
	got := bcall(t, "push", orig, Int(3))
	wantVal(t, got, List([]Value{Int(1), Int(2), Int(3)}))
	wantVal(t, orig, List([]Value{Int(1), Int(2)}))
	wantVal(t, bcall(t, "push", Int(1), Int(3)), None)
}

func Test_Builtin_Concat(t *testing.T) {
	a := List([]Value{Int(1)})
	b := List([]Value{Int(2), Int(3)})
	wantVal(t, bcall(t, "concat", a, b), List([]Value{Int(1), Int(2), Int(3)}))
	wantVal(t, bcall(t, "concat", a, Str("x")), None)
}

func Test_Builtin_InputPromptForms(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreterIO(strings.NewReader("a\nb\nc\n"), &out, io.Discard)
	builtinInput(ip, []Value{Str("name: ")})
	builtinInput(ip, []Value{Int(7)})
	builtinInput(ip, []Value{List(nil)})
	if out.String() != "name: 7" {
		t.Fatalf("prompt output wrong: %q", out.String())
	}
}

func Test_Builtin_ShadowsUserFunction(t *testing.T) {
	wantOutput(t, "def len(x): return 99\nprint(len(\"ab\"))\n", "2\n")
}
