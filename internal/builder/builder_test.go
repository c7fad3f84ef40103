package builder

import (
	"testing"

	"github.com/addrian77/jcs-transpiler/internal/cst"
	"github.com/addrian77/jcs-transpiler/internal/ir"
)

func parseAndBuild(t *testing.T, source string) *ir.Program {
	t.Helper()
	tree, err := cst.Parse(cst.CSharp, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	prog, err := Build(tree.RootNode(), []byte(source))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return prog
}

func TestBuildMinimalHello(t *testing.T) {
	src := `class Program {
    public static void Main() {
        Console.WriteLine("Hello World!");
    }
}`
	prog := parseAndBuild(t, src)
	if len(prog.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(prog.Classes))
	}
	class := prog.Classes[0]
	if class.Name != "Program" {
		t.Errorf("class name = %q, want Program", class.Name)
	}
	if class.UsesInput {
		t.Errorf("UsesInput should be false for a program with no input calls")
	}
	if len(class.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(class.Methods))
	}
	method := class.Methods[0]
	if method.Name != "Main" || method.ReturnType != ir.TypeVoid {
		t.Errorf("method = %+v, want Main/Void", method)
	}
	if len(method.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(method.Body))
	}
	stmt, ok := method.Body[0].(*ir.ExprStmt)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.ExprStmt", method.Body[0])
	}
	call, ok := stmt.Value.(*ir.CallExpr)
	if !ok || call.Function != "Console.WriteLine" {
		t.Errorf("call = %+v, want Console.WriteLine", stmt.Value)
	}
}

func TestBuildIntegerReadSetsUsesInput(t *testing.T) {
	src := `class Program {
    public static void Main() {
        int x = int.Parse(Console.ReadLine());
    }
}`
	prog := parseAndBuild(t, src)
	class := prog.Classes[0]
	if !class.UsesInput {
		t.Errorf("UsesInput should be true when int.Parse(Console.ReadLine()) is present")
	}
	decl, ok := class.Methods[0].Body[0].(*ir.VarDecl)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.VarDecl", class.Methods[0].Body[0])
	}
	if decl.Variable.Type != ir.TypeInt || decl.Variable.Name != "x" {
		t.Errorf("variable = %+v, want int x", decl.Variable)
	}
	call, ok := decl.Value.(*ir.CallExpr)
	if !ok || call.Function != "int.Parse" {
		t.Fatalf("value = %+v, want int.Parse call", decl.Value)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("int.Parse arity = %d, want 1", len(call.Arguments))
	}
	inner, ok := call.Arguments[0].(*ir.CallExpr)
	if !ok || inner.Function != "Console.ReadLine" {
		t.Errorf("argument = %+v, want Console.ReadLine call", call.Arguments[0])
	}
}

func TestBuildIfElseIfChainNestsRatherThanFlattens(t *testing.T) {
	src := `class Program {
    public static void Main() {
        if (a) {
            Console.WriteLine("a");
        } else if (b) {
            Console.WriteLine("b");
        } else {
            Console.WriteLine("c");
        }
    }
}`
	prog := parseAndBuild(t, src)
	outer, ok := prog.Classes[0].Methods[0].Body[0].(*ir.If)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.If", prog.Classes[0].Methods[0].Body[0])
	}
	if len(outer.Else) != 1 {
		t.Fatalf("outer.Else has %d statements, want 1 (nested if)", len(outer.Else))
	}
	inner, ok := outer.Else[0].(*ir.If)
	if !ok {
		t.Fatalf("outer.Else[0] type = %T, want *ir.If", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Fatalf("inner.Else has %d statements, want 1", len(inner.Else))
	}
	if _, ok := inner.Else[0].(*ir.ExprStmt); !ok {
		t.Errorf("inner.Else[0] type = %T, want *ir.ExprStmt", inner.Else[0])
	}
}

func TestBuildForLoopWithPostfixIncrement(t *testing.T) {
	src := `class Program {
    public static void Main() {
        for (int i = 0; i < 5; i++) {
            Console.WriteLine(i);
        }
    }
}`
	prog := parseAndBuild(t, src)
	forStmt, ok := prog.Classes[0].Methods[0].Body[0].(*ir.For)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.For", prog.Classes[0].Methods[0].Body[0])
	}
	initDecl, ok := forStmt.Init.(*ir.VarDecl)
	if !ok || initDecl.Variable.Name != "i" {
		t.Errorf("Init = %+v, want VarDecl i", forStmt.Init)
	}
	cond, ok := forStmt.Cond.(*ir.BinaryExpr)
	if !ok || cond.Op != ir.Lt {
		t.Errorf("Cond = %+v, want i < 5", forStmt.Cond)
	}
	incr, ok := forStmt.Incr.(*ir.ExprStmt)
	if !ok {
		t.Fatalf("Incr type = %T, want *ir.ExprStmt", forStmt.Incr)
	}
	post, ok := incr.Value.(*ir.UnaryPostfixExpr)
	if !ok || post.Op != ir.UAdd {
		t.Errorf("Incr.Value = %+v, want postfix ++", incr.Value)
	}
	if len(forStmt.Body) != 1 {
		t.Fatalf("Body has %d statements, want 1", len(forStmt.Body))
	}
}

func TestBuildWhileWithBraceLessBody(t *testing.T) {
	src := `class Program {
    public static void Main() {
        while (running)
            Console.WriteLine("tick");
    }
}`
	prog := parseAndBuild(t, src)
	whileStmt, ok := prog.Classes[0].Methods[0].Body[0].(*ir.While)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.While", prog.Classes[0].Methods[0].Body[0])
	}
	cond, ok := whileStmt.Cond.(*ir.VarExpr)
	if !ok || cond.Name != "running" {
		t.Errorf("Cond = %+v, want VarExpr running", whileStmt.Cond)
	}
	if len(whileStmt.Body) != 1 {
		t.Fatalf("Body has %d statements, want 1 (bare statement body)", len(whileStmt.Body))
	}
}

func TestBuildArrayDeclarationTruncatesSilently(t *testing.T) {
	src := `class Program {
    public static void Main() {
        int arr[3] = {1,2,3};
    }
}`
	prog := parseAndBuild(t, src)
	decl, ok := prog.Classes[0].Methods[0].Body[0].(*ir.VarDecl)
	if !ok {
		t.Fatalf("statement type = %T, want *ir.VarDecl", prog.Classes[0].Methods[0].Body[0])
	}
	if decl.Variable.Type != ir.TypeInt || decl.Variable.Name != "arr" {
		t.Errorf("variable = %+v, want int arr", decl.Variable)
	}
	if decl.Value != nil {
		t.Errorf("Value = %+v, want nil (the [3] = {...} suffix is not captured as an initializer)", decl.Value)
	}
}

func TestBuildUnsupportedExpressionIsFatal(t *testing.T) {
	src := `class Program {
    public static void Main() {
        var x = new Foo();
    }
}`
	tree, err := cst.Parse(cst.CSharp, []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	_, err = Build(tree.RootNode(), []byte(src))
	if err == nil {
		t.Fatalf("Build() error = nil, want an unsupported-expression error")
	}
}
