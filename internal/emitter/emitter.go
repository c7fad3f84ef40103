// Package emitter renders the IR as DST (Java-shaped) source text,
// applying the semantic bridges where SRC and DST disagree: I/O library
// names, integer-parse intrinsics, primitive type spellings, the main-method
// signature, and scanner-lifetime plumbing.
package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/addrian77/jcs-transpiler/internal/ir"
)

// Emit renders a Program as DST source text. Emission cannot fail: every
// fatal condition is caught earlier, during lowering.
func Emit(program *ir.Program) string {
	e := &emitter{}
	e.emitProgram(program)
	return e.output.String()
}

type emitter struct {
	indent int
	output strings.Builder
}

func (e *emitter) line(s string) {
	e.output.WriteString(strings.Repeat("    ", e.indent))
	e.output.WriteString(s)
	e.output.WriteString("\n")
}

func (e *emitter) emitProgram(program *ir.Program) {
	for i := range program.Classes {
		e.emitClass(&program.Classes[i])
	}
}

func (e *emitter) emitClass(class *ir.Class) {
	if class.UsesInput {
		e.line("import java.util.Scanner;")
	}
	e.line(fmt.Sprintf("class %s {", class.Name))
	e.indent++
	for i := range class.Methods {
		e.emitMethod(&class.Methods[i], class.UsesInput)
	}
	e.indent--
	e.line("}")
}

func (e *emitter) emitMethod(method *ir.Method, usesInput bool) {
	var prefix strings.Builder
	for _, m := range method.Modifiers {
		if word := modifierWord(m); word != "" {
			prefix.WriteString(word)
			prefix.WriteString(" ")
		}
	}
	prefix.WriteString(typeWord(method.ReturnType))
	prefix.WriteString(" ")

	name := method.Name
	params := paramList(method.Parameters)
	if method.Name == "Main" {
		name = "main"
		if params == "" {
			params = "String[] args"
		} else {
			params = "String[] args, " + params
		}
	}

	e.line(fmt.Sprintf("%s%s(%s) {", prefix.String(), name, params))
	e.indent++
	if usesInput {
		e.line("Scanner scanner = new Scanner(System.in);")
	}
	for _, stmt := range method.Body {
		e.emitStatement(stmt)
	}
	e.indent--
	e.line("}")
}

func (e *emitter) emitStatement(stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.VarDecl:
		e.line(inlineVarDecl(s) + ";")
	case *ir.Assign:
		e.line(inlineAssign(s) + ";")
	case *ir.ExprStmt:
		e.line(exprText(s.Value) + ";")
	case *ir.Return:
		if s.Value == nil {
			e.line("return;")
		} else {
			e.line("return " + exprText(s.Value) + ";")
		}
	case *ir.If:
		e.emitIf(s)
	case *ir.While:
		e.line(fmt.Sprintf("while (%s) {", exprText(s.Cond)))
		e.indent++
		for _, st := range s.Body {
			e.emitStatement(st)
		}
		e.indent--
		e.line("}")
	case *ir.For:
		e.emitFor(s)
	}
}

func (e *emitter) emitIf(s *ir.If) {
	e.line(fmt.Sprintf("if (%s) {", exprText(s.Cond)))
	e.indent++
	for _, st := range s.Then {
		e.emitStatement(st)
	}
	e.indent--
	e.line("}")

	if len(s.Else) > 0 {
		e.line("else {")
		e.indent++
		for _, st := range s.Else {
			e.emitStatement(st)
		}
		e.indent--
		e.line("}")
	}
}

func (e *emitter) emitFor(s *ir.For) {
	cond := ""
	if s.Cond != nil {
		cond = exprText(s.Cond)
	}
	e.line(fmt.Sprintf("for (%s; %s; %s) {", inlineStatement(s.Init), cond, inlineStatement(s.Incr)))
	e.indent++
	for _, st := range s.Body {
		e.emitStatement(st)
	}
	e.indent--
	e.line("}")
}

// inlineStatement renders a For init/increment slot: VarDecl and Assign
// omit their trailing semicolon, ExprStmt renders as the bare expression,
// and anything else (including an absent slot) renders as the empty
// string.
func inlineStatement(stmt ir.Statement) string {
	switch s := stmt.(type) {
	case nil:
		return ""
	case *ir.VarDecl:
		return inlineVarDecl(s)
	case *ir.Assign:
		return inlineAssign(s)
	case *ir.ExprStmt:
		return exprText(s.Value)
	default:
		return ""
	}
}

func inlineVarDecl(s *ir.VarDecl) string {
	out := fmt.Sprintf("%s %s", typeWord(s.Variable.Type), s.Variable.Name)
	if s.Value != nil {
		out += " = " + exprText(s.Value)
	}
	return out
}

func inlineAssign(s *ir.Assign) string {
	return fmt.Sprintf("%s = %s", s.Target, exprText(s.Value))
}

func exprText(expr ir.Expression) string {
	switch e := expr.(type) {
	case *ir.LiteralExpr:
		return literalText(e.Value)
	case *ir.VarExpr:
		return e.Name
	case *ir.BinaryExpr:
		return fmt.Sprintf("%s %s %s", exprText(e.Left), binaryOpText(e.Op), exprText(e.Right))
	case *ir.UnaryPrefixExpr:
		return unaryOpText(e.Op) + exprText(e.Right)
	case *ir.UnaryPostfixExpr:
		return exprText(e.Left) + unaryOpText(e.Op)
	case *ir.CallExpr:
		return callText(e)
	default:
		return ""
	}
}

func literalText(lit ir.Literal) string {
	switch lit.Kind {
	case ir.LitInt:
		return strconv.FormatInt(int64(lit.IntVal), 10)
	case ir.LitBool:
		if lit.BoolVal {
			return "true"
		}
		return "false"
	case ir.LitString:
		return lit.StringVal
	case ir.LitFloat:
		return strconv.FormatFloat(float64(lit.FloatVal), 'g', -1, 32) + "f"
	case ir.LitDouble:
		return strconv.FormatFloat(lit.DoubleVal, 'g', -1, 64) + "d"
	default:
		return ""
	}
}

func binaryOpText(op ir.BinaryOperator) string {
	switch op {
	case ir.Add:
		return "+"
	case ir.Sub:
		return "-"
	case ir.Mul:
		return "*"
	case ir.Div:
		return "/"
	case ir.Eq:
		return "=="
	case ir.Ne:
		return "!="
	case ir.Lt:
		return "<"
	case ir.Gt:
		return ">"
	case ir.Le:
		return "<="
	case ir.Ge:
		return ">="
	case ir.And:
		return "&&"
	case ir.Or:
		return "||"
	default:
		return ""
	}
}

func unaryOpText(op ir.UnaryOperator) string {
	switch op {
	case ir.Not:
		return "!"
	case ir.Neg:
		return "-"
	case ir.UAdd:
		return "++"
	case ir.USub:
		return "--"
	default:
		return ""
	}
}

// callText is the call bridge. The four Scanner-backed bridges
// intentionally discard their argument expressions.
func callText(call *ir.CallExpr) string {
	switch call.Function {
	case "Console.WriteLine":
		return "System.out.println(" + joinArgs(call.Arguments) + ")"
	case "Console.ReadLine":
		return "scanner.nextLine()"
	case "int.Parse":
		return "scanner.nextInt()"
	case "double.Parse":
		return "scanner.nextDouble()"
	case "bool.Parse":
		return "scanner.nextBoolean()"
	default:
		return call.Function + "(" + joinArgs(call.Arguments) + ")"
	}
}

func joinArgs(args []ir.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = exprText(a)
	}
	return strings.Join(parts, ", ")
}

func modifierWord(m ir.Modifier) string {
	switch m {
	case ir.ModifierPublic:
		return "public"
	case ir.ModifierPrivate:
		return "private"
	case ir.ModifierStatic:
		return "static"
	default:
		return ""
	}
}

func typeWord(t ir.Type) string {
	switch t {
	case ir.TypeVoid:
		return "void"
	case ir.TypeInt:
		return "int"
	case ir.TypeBool:
		return "boolean"
	case ir.TypeString:
		return "String"
	case ir.TypeFloat:
		return "float"
	case ir.TypeDouble:
		return "double"
	default:
		return "Object"
	}
}

func paramList(params []ir.Variable) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s %s", typeWord(p.Type), p.Name)
	}
	return strings.Join(parts, ", ")
}
