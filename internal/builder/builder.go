// Package builder lowers a parsed SRC compilation unit (a tree-sitter-c-sharp
// parse tree) into the IR: it walks the tree once, recognizing a fixed set
// of C#-shaped node kinds and turning each into the corresponding IR node.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/addrian77/jcs-transpiler/internal/cst"
	"github.com/addrian77/jcs-transpiler/internal/ir"
	"github.com/addrian77/jcs-transpiler/internal/lang"
)

// Build lowers the root node of a parsed SRC file into an IR Program.
func Build(root *tree_sitter.Node, source []byte) (*ir.Program, error) {
	b := &builder{source: source}
	prog := &ir.Program{}
	if err := b.findClasses(root, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

type builder struct {
	source []byte
}

func (b *builder) text(n *tree_sitter.Node) string {
	return cst.NodeText(n, b.source)
}

// findClasses recurses the whole tree for class_declaration nodes.
func (b *builder) findClasses(node *tree_sitter.Node, prog *ir.Program) error {
	if node.Kind() == lang.KindClassDeclaration {
		nameNode := cst.ChildByKind(node, lang.KindIdentifier)
		if nameNode == nil {
			return fmt.Errorf("structural: class_declaration missing identifier child")
		}
		usesInput := new(bool)
		methods, err := b.findMethods(node, usesInput)
		if err != nil {
			return err
		}
		prog.Classes = append(prog.Classes, ir.Class{
			Name:      b.text(nameNode),
			Methods:   methods,
			UsesInput: *usesInput,
		})
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if err := b.findClasses(child, prog); err != nil {
			return err
		}
	}
	return nil
}

// findMethods recurses the class's subtree for method_declaration nodes.
// usesInput is the shared side-channel: any intrinsic input call lowered
// anywhere beneath this class sets it.
func (b *builder) findMethods(node *tree_sitter.Node, usesInput *bool) ([]ir.Method, error) {
	var methods []ir.Method
	if node.Kind() == lang.KindMethodDeclaration {
		m, err := b.buildMethod(node, usesInput)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *m)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		nested, err := b.findMethods(child, usesInput)
		if err != nil {
			return nil, err
		}
		methods = append(methods, nested...)
	}
	return methods, nil
}

func (b *builder) buildMethod(node *tree_sitter.Node, usesInput *bool) (*ir.Method, error) {
	var modifiers []ir.Modifier
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != lang.KindModifier {
			break
		}
		modifiers = append(modifiers, ir.ModifierFromTag(lang.ModifierFor(b.text(child))))
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("structural: method_declaration missing name field")
	}
	returnsNode := node.ChildByFieldName("returns")
	if returnsNode == nil {
		return nil, fmt.Errorf("structural: method_declaration missing returns field")
	}
	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil, fmt.Errorf("structural: method_declaration missing parameters field")
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("structural: method_declaration missing body field")
	}

	params, err := b.buildParameters(paramsNode)
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(bodyNode, usesInput)
	if err != nil {
		return nil, err
	}

	return &ir.Method{
		Name:       b.text(nameNode),
		ReturnType: ir.TypeFromTag(lang.TypeFor(b.text(returnsNode))),
		Modifiers:  modifiers,
		Parameters: params,
		Body:       body,
	}, nil
}

// buildParameters splits each parameter's text on its first space: the left
// side is the type spelling, the right is the name.
func (b *builder) buildParameters(node *tree_sitter.Node) ([]ir.Variable, error) {
	var out []ir.Variable
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != lang.KindParameter {
			continue
		}
		text := b.text(child)
		parts := strings.SplitN(text, " ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("structural: parameter %q has no type/name split", text)
		}
		out = append(out, ir.Variable{
			Type: ir.TypeFromTag(lang.TypeFor(parts[0])),
			Name: parts[1],
		})
	}
	return out, nil
}

// buildBlock lowers every direct child of a block. Unrecognized statement
// kinds are silently skipped, leaving room for SRC features this builder
// does not yet recognize.
func (b *builder) buildBlock(node *tree_sitter.Node, usesInput *bool) ([]ir.Statement, error) {
	var stmts []ir.Statement
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		stmt, ok, err := b.buildStatement(child, usesInput)
		if err != nil {
			return nil, err
		}
		if ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// buildBody lowers a statement-or-block position (the then/else/while/for
// body slot), accepting either a braced block or a single bare statement.
func (b *builder) buildBody(node *tree_sitter.Node, usesInput *bool) ([]ir.Statement, error) {
	if node.Kind() == lang.KindBlock {
		return b.buildBlock(node, usesInput)
	}
	stmt, ok, err := b.buildStatement(node, usesInput)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []ir.Statement{stmt}, nil
}

func (b *builder) buildStatement(node *tree_sitter.Node, usesInput *bool) (ir.Statement, bool, error) {
	switch node.Kind() {
	case lang.KindLocalDeclarationStatement:
		s, err := b.buildVarDecl(node, usesInput)
		return s, true, err
	case lang.KindIfStatement:
		s, err := b.buildIf(node, usesInput)
		return s, true, err
	case lang.KindForStatement:
		s, err := b.buildFor(node, usesInput)
		return s, true, err
	case lang.KindWhileStatement:
		s, err := b.buildWhile(node, usesInput)
		return s, true, err
	case lang.KindReturnStatement:
		s, err := b.buildReturn(node, usesInput)
		return s, true, err
	case lang.KindExpressionStatement:
		s, err := b.buildExpressionStatement(node, usesInput)
		return s, true, err
	default:
		return nil, false, nil
	}
}

// buildVarDecl accepts either a local_declaration_statement (the usual
// in-block form) or a bare variable_declaration (the shape the for-loop
// initializer slot exposes).
func (b *builder) buildVarDecl(node *tree_sitter.Node, usesInput *bool) (*ir.VarDecl, error) {
	declNode := node
	if node.Kind() != lang.KindVariableDeclaration {
		declNode = cst.ChildByKind(node, lang.KindVariableDeclaration)
	}
	if declNode == nil {
		return nil, fmt.Errorf("structural: %s missing variable_declaration", node.Kind())
	}

	typeNode := declNode.ChildByFieldName("type")
	declaratorNode := cst.ChildByKind(declNode, lang.KindVariableDeclarator)
	if declaratorNode == nil {
		return nil, fmt.Errorf("structural: variable_declaration missing variable_declarator")
	}
	nameNode := declaratorNode.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("structural: variable_declarator missing name field")
	}

	typ := ir.TypeUnknown
	if typeNode != nil {
		typ = ir.TypeFromTag(lang.TypeFor(b.text(typeNode)))
	}

	vd := &ir.VarDecl{Variable: ir.Variable{Type: typ, Name: b.text(nameNode)}}

	// A declarator's "value" field is absent both for a plain `int x;` and
	// for the unsupported array-literal form `int arr[3] = {1,2,3}`: the
	// bracketed suffix is not captured as this declarator's initializer by
	// the grammar, so there is nothing here to lower — the initializer is
	// silently dropped rather than treated as a parse failure.
	if valueNode := declaratorNode.ChildByFieldName("value"); valueNode != nil {
		value, err := b.buildExpression(valueNode, usesInput)
		if err != nil {
			return nil, err
		}
		vd.Value = value
	}
	return vd, nil
}

func (b *builder) buildIf(node *tree_sitter.Node, usesInput *bool) (*ir.If, error) {
	condNode := node.ChildByFieldName("condition")
	if condNode == nil {
		return nil, fmt.Errorf("structural: if_statement missing condition field")
	}
	cond, err := b.buildExpression(condNode, usesInput)
	if err != nil {
		return nil, err
	}

	consNode := node.ChildByFieldName("consequence")
	if consNode == nil {
		return nil, fmt.Errorf("structural: if_statement missing consequence field")
	}
	then, err := b.buildBody(consNode, usesInput)
	if err != nil {
		return nil, err
	}

	ifStmt := &ir.If{Cond: cond, Then: then, Else: []ir.Statement{}}

	altNode := node.ChildByFieldName("alternative")
	if altNode == nil {
		return ifStmt, nil
	}

	switch altNode.Kind() {
	case lang.KindIfStatement:
		nested, err := b.buildIf(altNode, usesInput)
		if err != nil {
			return nil, err
		}
		ifStmt.Else = []ir.Statement{nested}
	default:
		elseBody, err := b.buildBody(altNode, usesInput)
		if err != nil {
			return nil, err
		}
		ifStmt.Else = elseBody
	}
	return ifStmt, nil
}

func (b *builder) buildFor(node *tree_sitter.Node, usesInput *bool) (*ir.For, error) {
	f := &ir.For{}

	if initNode := node.ChildByFieldName("initializer"); initNode != nil {
		stmt, err := b.buildForInit(initNode, usesInput)
		if err != nil {
			return nil, err
		}
		f.Init = stmt
	}
	if condNode := node.ChildByFieldName("condition"); condNode != nil {
		cond, err := b.buildExpression(condNode, usesInput)
		if err != nil {
			return nil, err
		}
		f.Cond = cond
	}
	if updNode := node.ChildByFieldName("update"); updNode != nil {
		stmt, err := b.buildForIncrement(updNode, usesInput)
		if err != nil {
			return nil, err
		}
		f.Incr = stmt
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		if nc := node.NamedChildCount(); nc > 0 {
			bodyNode = node.NamedChild(nc - 1)
		}
	}
	if bodyNode == nil {
		return nil, fmt.Errorf("structural: for_statement has no body")
	}
	body, err := b.buildBody(bodyNode, usesInput)
	if err != nil {
		return nil, err
	}
	f.Body = body
	return f, nil
}

// buildForInit enforces For.initializer's invariant: absent, VarDecl, or
// Assign — no other variant.
func (b *builder) buildForInit(node *tree_sitter.Node, usesInput *bool) (ir.Statement, error) {
	switch node.Kind() {
	case lang.KindLocalDeclarationStatement, lang.KindVariableDeclaration:
		return b.buildVarDecl(node, usesInput)
	case lang.KindAssignmentExpression:
		return b.buildAssign(node, usesInput)
	default:
		return nil, fmt.Errorf("unsupported: for-statement initializer kind %q", node.Kind())
	}
}

// buildForIncrement enforces For.increment's invariant: absent, Assign, or
// ExprStmt — any non-assignment expression, such as a postfix i++, becomes
// an ExprStmt wrapping that expression.
func (b *builder) buildForIncrement(node *tree_sitter.Node, usesInput *bool) (ir.Statement, error) {
	if node.Kind() == lang.KindAssignmentExpression {
		return b.buildAssign(node, usesInput)
	}
	expr, err := b.buildExpression(node, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.ExprStmt{Value: expr}, nil
}

func (b *builder) buildWhile(node *tree_sitter.Node, usesInput *bool) (*ir.While, error) {
	condNode := node.ChildByFieldName("condition")
	if condNode == nil {
		return nil, fmt.Errorf("structural: while_statement missing condition field")
	}
	cond, err := b.buildExpression(condNode, usesInput)
	if err != nil {
		return nil, err
	}

	bodyNode := cst.ChildByKind(node, lang.KindBlock)
	if bodyNode == nil {
		bodyNode = node.ChildByFieldName("body")
	}
	if bodyNode == nil {
		return nil, fmt.Errorf("structural: while_statement has no body")
	}
	body, err := b.buildBody(bodyNode, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.While{Cond: cond, Body: body}, nil
}

func (b *builder) buildReturn(node *tree_sitter.Node, usesInput *bool) (*ir.Return, error) {
	if node.NamedChildCount() == 0 {
		return &ir.Return{}, nil
	}
	value, err := b.buildExpression(node.NamedChild(0), usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.Return{Value: value}, nil
}

func (b *builder) buildExpressionStatement(node *tree_sitter.Node, usesInput *bool) (ir.Statement, error) {
	if node.NamedChildCount() == 0 {
		return nil, fmt.Errorf("structural: expression_statement has no expression child")
	}
	inner := node.NamedChild(0)
	if inner.Kind() == lang.KindAssignmentExpression {
		return b.buildAssign(inner, usesInput)
	}
	expr, err := b.buildExpression(inner, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.ExprStmt{Value: expr}, nil
}

func (b *builder) buildAssign(node *tree_sitter.Node, usesInput *bool) (*ir.Assign, error) {
	leftNode := node.ChildByFieldName("left")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || rightNode == nil {
		return nil, fmt.Errorf("structural: assignment_expression missing left/right field")
	}
	if leftNode.Kind() != lang.KindIdentifier {
		return nil, fmt.Errorf("unsupported: assignment target kind %q", leftNode.Kind())
	}
	value, err := b.buildExpression(rightNode, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.Assign{Target: b.text(leftNode), Value: value}, nil
}

func (b *builder) buildExpression(node *tree_sitter.Node, usesInput *bool) (ir.Expression, error) {
	switch node.Kind() {
	case lang.KindIntegerLiteral:
		v, err := strconv.ParseInt(b.text(node), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("structural: invalid integer literal %q: %w", b.text(node), err)
		}
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitInt, IntVal: int32(v)}}, nil
	case lang.KindRealLiteral:
		return b.buildRealLiteral(node)
	case lang.KindBooleanLiteral:
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitBool, BoolVal: b.text(node) == "true"}}, nil
	case lang.KindStringLiteral:
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitString, StringVal: b.text(node)}}, nil
	case lang.KindIdentifier:
		return &ir.VarExpr{Name: b.text(node)}, nil
	case lang.KindBinaryExpression:
		return b.buildBinary(node, usesInput)
	case lang.KindPrefixUnaryExpression:
		return b.buildUnaryPrefix(node, usesInput)
	case lang.KindPostfixUnaryExpression:
		return b.buildUnaryPostfix(node, usesInput)
	case lang.KindInvocationExpression:
		return b.buildCall(node, usesInput)
	default:
		return nil, fmt.Errorf("unsupported: expression kind %q", node.Kind())
	}
}

func (b *builder) buildRealLiteral(node *tree_sitter.Node) (ir.Expression, error) {
	text := b.text(node)
	if text == "" {
		return nil, fmt.Errorf("structural: empty real_literal")
	}
	last := text[len(text)-1]
	switch last {
	case 'f', 'F':
		v, err := strconv.ParseFloat(text[:len(text)-1], 32)
		if err != nil {
			return nil, fmt.Errorf("structural: invalid real literal %q: %w", text, err)
		}
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitFloat, FloatVal: float32(v)}}, nil
	case 'd', 'D':
		v, err := strconv.ParseFloat(text[:len(text)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("structural: invalid real literal %q: %w", text, err)
		}
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitDouble, DoubleVal: v}}, nil
	default:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, fmt.Errorf("structural: invalid real literal %q: %w", text, err)
		}
		return &ir.LiteralExpr{Value: ir.Literal{Kind: ir.LitFloat, FloatVal: float32(v)}}, nil
	}
}

func (b *builder) buildBinary(node *tree_sitter.Node, usesInput *bool) (ir.Expression, error) {
	leftNode := node.ChildByFieldName("left")
	opNode := node.ChildByFieldName("operator")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || opNode == nil || rightNode == nil {
		return nil, fmt.Errorf("structural: binary_expression missing left/operator/right field")
	}
	op, ok := ir.BinaryOperatorFromTag(lang.BinaryOperatorFor(b.text(opNode)))
	if !ok {
		return nil, fmt.Errorf("unsupported: binary operator %q", b.text(opNode))
	}
	left, err := b.buildExpression(leftNode, usesInput)
	if err != nil {
		return nil, err
	}
	right, err := b.buildExpression(rightNode, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.BinaryExpr{Left: left, Op: op, Right: right}, nil
}

// buildUnaryPrefix reads operator/operand positionally — the first and
// second children — rather than by field name.
func (b *builder) buildUnaryPrefix(node *tree_sitter.Node, usesInput *bool) (ir.Expression, error) {
	if node.ChildCount() < 2 {
		return nil, fmt.Errorf("structural: prefix_unary_expression has fewer than 2 children")
	}
	opNode, operandNode := node.Child(0), node.Child(1)
	op, ok := ir.UnaryOperatorFromTag(lang.PrefixUnaryOperatorFor(b.text(opNode)))
	if !ok {
		return nil, fmt.Errorf("unsupported: prefix unary operator %q", b.text(opNode))
	}
	right, err := b.buildExpression(operandNode, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.UnaryPrefixExpr{Op: op, Right: right}, nil
}

func (b *builder) buildUnaryPostfix(node *tree_sitter.Node, usesInput *bool) (ir.Expression, error) {
	if node.ChildCount() < 2 {
		return nil, fmt.Errorf("structural: postfix_unary_expression has fewer than 2 children")
	}
	operandNode, opNode := node.Child(0), node.Child(1)
	op, ok := ir.UnaryOperatorFromTag(lang.PostfixUnaryOperatorFor(b.text(opNode)))
	if !ok {
		return nil, fmt.Errorf("unsupported: postfix unary operator %q", b.text(opNode))
	}
	left, err := b.buildExpression(operandNode, usesInput)
	if err != nil {
		return nil, err
	}
	return &ir.UnaryPostfixExpr{Left: left, Op: op}, nil
}

func (b *builder) buildCall(node *tree_sitter.Node, usesInput *bool) (ir.Expression, error) {
	funcNode := node.ChildByFieldName("function")
	if funcNode == nil {
		return nil, fmt.Errorf("structural: invocation_expression missing function field")
	}
	name, err := b.dottedName(funcNode)
	if err != nil {
		return nil, err
	}

	var args []ir.Expression
	if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
		for i := uint(0); i < argsNode.ChildCount(); i++ {
			child := argsNode.Child(i)
			if child == nil || child.Kind() != lang.KindArgument {
				continue
			}
			exprNode := child.NamedChild(0)
			if exprNode == nil {
				return nil, fmt.Errorf("structural: argument has no expression child")
			}
			arg, err := b.buildExpression(exprNode, usesInput)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if lang.InputIntrinsics[name] {
		*usesInput = true
	}

	return &ir.CallExpr{Function: name, Arguments: args}, nil
}

// dottedName recursively assembles a member_access_expression chain (e.g.
// Console.WriteLine) into its full dotted string.
func (b *builder) dottedName(node *tree_sitter.Node) (string, error) {
	switch node.Kind() {
	case lang.KindIdentifier, lang.KindPredefinedType:
		return b.text(node), nil
	case lang.KindMemberAccessExpression:
		leftNode := node.ChildByFieldName("expression")
		rightNode := node.ChildByFieldName("name")
		if leftNode == nil || rightNode == nil {
			return "", fmt.Errorf("structural: member_access_expression missing expression/name field")
		}
		left, err := b.dottedName(leftNode)
		if err != nil {
			return "", err
		}
		return left + "." + b.text(rightNode), nil
	default:
		return "", fmt.Errorf("unsupported: function-name expression kind %q", node.Kind())
	}
}
