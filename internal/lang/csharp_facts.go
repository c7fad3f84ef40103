package lang

// csharp_facts.go holds the lexical facts of the supported SRC subset: the
// tree-sitter-c-sharp node kinds the builder recognizes, and the SRC-side
// spelling maps that turn source text into IR enum values.

// Node kinds recognized by the builder. Any other kind encountered as a
// top-level statement is skipped; as an expression it is fatal.
const (
	KindClassDeclaration          = "class_declaration"
	KindMethodDeclaration         = "method_declaration"
	KindModifier                  = "modifier"
	KindPredefinedType            = "predefined_type"
	KindParameterList             = "parameter_list"
	KindParameter                 = "parameter"
	KindBlock                     = "block"
	KindLocalDeclarationStatement = "local_declaration_statement"
	KindVariableDeclaration       = "variable_declaration"
	KindVariableDeclarator        = "variable_declarator"
	KindAssignmentExpression      = "assignment_expression"
	KindIfStatement               = "if_statement"
	KindForStatement              = "for_statement"
	KindWhileStatement            = "while_statement"
	KindReturnStatement           = "return_statement"
	KindExpressionStatement       = "expression_statement"
	KindBinaryExpression          = "binary_expression"
	KindPrefixUnaryExpression     = "prefix_unary_expression"
	KindPostfixUnaryExpression    = "postfix_unary_expression"
	KindInvocationExpression      = "invocation_expression"
	KindArgument                  = "argument"
	KindArgumentList              = "argument_list"
	KindMemberAccessExpression    = "member_access_expression"
	KindIntegerLiteral            = "integer_literal"
	KindRealLiteral               = "real_literal"
	KindBooleanLiteral            = "boolean_literal"
	KindStringLiteral             = "string_literal"
	KindIdentifier                = "identifier"
)

// TypeFor maps a SRC predefined-type spelling to an IR type tag name. It
// returns "" for spellings this subset does not recognize; callers treat
// that as Unknown.
func TypeFor(spelling string) string {
	switch spelling {
	case "void":
		return "Void"
	case "int":
		return "Int"
	case "bool":
		return "Bool"
	case "string":
		return "String"
	case "float":
		return "Float"
	case "double":
		return "Double"
	default:
		return ""
	}
}

// ModifierFor maps a SRC modifier spelling to an IR modifier tag name,
// mirroring TypeFor's "" = Unknown convention.
func ModifierFor(spelling string) string {
	switch spelling {
	case "public":
		return "Public"
	case "private":
		return "Private"
	case "static":
		return "Static"
	default:
		return ""
	}
}

// BinaryOperatorFor maps SRC binary operator text to an IR operator tag
// name, or "" if unrecognized (a fatal condition).
func BinaryOperatorFor(text string) string {
	switch text {
	case "+":
		return "Add"
	case "-":
		return "Sub"
	case "*":
		return "Mul"
	case "/":
		return "Div"
	case "==":
		return "Eq"
	case "!=":
		return "Ne"
	case "<":
		return "Lt"
	case ">":
		return "Gt"
	case "<=":
		return "Le"
	case ">=":
		return "Ge"
	case "&&":
		return "And"
	case "||":
		return "Or"
	default:
		return ""
	}
}

// PrefixUnaryOperatorFor maps SRC prefix-unary operator text to an IR
// operator tag name.
func PrefixUnaryOperatorFor(text string) string {
	switch text {
	case "!":
		return "Not"
	case "-":
		return "Neg"
	default:
		return ""
	}
}

// PostfixUnaryOperatorFor maps SRC postfix-unary operator text to an IR
// operator tag name.
func PostfixUnaryOperatorFor(text string) string {
	switch text {
	case "++":
		return "UAdd"
	case "--":
		return "USub"
	default:
		return ""
	}
}

// InputIntrinsics is the fixed set of dotted call names that mark a class
// as interactive. Presence of any of these anywhere in a class's methods
// sets that class's uses_input flag.
var InputIntrinsics = map[string]bool{
	"Console.ReadLine": true,
	"int.Parse":        true,
	"double.Parse":     true,
	"bool.Parse":       true,
}
