package calc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{".5", ".5"},
		{"1+2", "1 2 +"},
		{"2 + 3 * 4", "2 3 4 * +"},
		{"(2 + 3) * 4", "2 3 + 4 *"},
		{"8 - 3 - 2", "8 3 - 2 -"},
		{"2 ^ 3 ^ 2", "2 3 ^ 2 ^"},
		{"1 * 2 ^ 3 / 4 % 5", "1 2 * 3 ^ 4 / 5 %"},
		{"-5", "5 neg"},
		{"+5", "5 pos"},
		{"--5", "5 neg neg"},
		{"-2 ^ 2", "2 neg 2 ^"},
		{"2 ^ -2", "2 2 neg ^"},
		{"3!", "3 !"},
		{"-3!", "3 ! neg"},
		{"3! * 2", "3 ! 2 *"},
		{"1 - -(2 + 3)", "1 2 3 + neg -"},
		{"((1))", "1"},
		{"1 + 2 * (3 - 4) ^ 5 % 6 - 7", "1 2 3 4 - * 5 ^ 6 % + 7 -"},
	}
	c := NewCompiler()
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			p, err := c.CompileString(tc.src)
			if err != nil {
				t.Fatalf("%q failed to compile: %v", tc.src, err)
			}
			if got := p.String(); got != tc.want {
				t.Errorf("%q compiled to %q, want %q", tc.src, got, tc.want)
			}
		})
	}
}

// TestCompileErrorsMatchParse checks that the compiler rejects exactly what the
// parser rejects, with the same errors.
func TestCompileErrorsMatchParse(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"(2 + 3",
		"((2)",
		"2 + 3)",
		")",
		"* 3",
		"3 *",
		"(3 +)",
		"()",
		"1 2",
		"1.2.3",
		"2(3)",
		"(3)!",
		"3!!",
		"!3",
		"(3!!)",
		"1 */ 2",
		"2 $ 3",
		"3$",
		"* $",
		"(1) $",
		"1 + x",
		".",
		"(1]",
		strings.Repeat("(", MaxDepth+1) + "1" + strings.Repeat(")", MaxDepth+1),
		strings.Repeat("-", MaxDepth+1) + "1",
		strings.Repeat("-(", MaxDepth/2) + "-1" + strings.Repeat(")", MaxDepth/2),
	}
	p := NewParser()
	c := NewCompiler()
	for _, src := range cases {
		name := src
		if len(name) > 20 {
			name = name[:20]
		}
		t.Run(name, func(t *testing.T) {
			_, perr := p.ParseString(src)
			_, cerr := c.CompileString(src)
			if perr == nil {
				t.Fatalf("%q parsed", src)
			}
			if !reflect.DeepEqual(perr, cerr) {
				t.Errorf("%q: parser gave %v, compiler gave %v", src, perr, cerr)
			}
			var ie InputError
			if !errors.As(cerr, &ie) {
				t.Errorf("%q: %#v is not an InputError", src, cerr)
			}
		})
	}
}

func TestCompilerDepth(t *testing.T) {
	ok := strings.Repeat("(", MaxDepth) + "1" + strings.Repeat(")", MaxDepth)
	if _, err := NewCompiler().CompileString(ok); err != nil {
		t.Errorf("nesting %d deep failed: %v", MaxDepth, err)
	}
	// Unary operators end with their operands, so they don't accumulate.
	long := strings.Repeat("-1*", 2*MaxDepth) + "1"
	if _, err := NewCompiler().CompileString(long); err != nil {
		t.Errorf("long flat expression failed: %v", err)
	}
}

func TestCompilerReuse(t *testing.T) {
	c := NewCompiler()
	if _, err := c.CompileString("(((1"); err == nil {
		t.Fatal("unclosed parens compiled")
	}
	p, err := c.CompileString("1 + 2")
	if err != nil {
		t.Fatalf("error after earlier error: %v", err)
	}
	if got := p.String(); got != "1 2 +" {
		t.Errorf("reused compiler gave %q", got)
	}
}

func TestEvalPostfix(t *testing.T) {
	c := NewCompiler()
	ctx := NewContext()
	p, err := c.CompileString("-3! + 2 ^ 3 ^ 2 % 10")
	if err != nil {
		t.Fatal(err)
	}
	r, err := ctx.EvalPostfix(p)
	if err != nil {
		t.Fatal(err)
	}
	// -6 + (64 % 10)
	if f, _ := r.Float64(); f != -2 {
		t.Errorf("want -2, got %g", r)
	}
	p, err = c.CompileString("1 + 1 / (3 - 3)")
	if err != nil {
		t.Fatal(err)
	}
	if r, err := ctx.EvalPostfix(p); err == nil {
		t.Errorf("division by zero gave %g", r)
	}
	if len(ctx.stack) != 0 {
		t.Errorf("error left %d values on the stack", len(ctx.stack))
	}
}
