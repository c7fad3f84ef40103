// Package validate supplements the emitter with a non-semantic safety net:
// after DST text is produced, it is re-parsed with the Java grammar and
// checked for unparseable regions, turning "syntactically valid" into a
// checked property instead of an unverified assertion.
package validate

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/addrian77/jcs-transpiler/internal/cst"
)

// Validate returns nil if source parses as Java with no ERROR or MISSING
// nodes, and a descriptive "structural" error for the first offending node
// otherwise.
func Validate(source string) error {
	tree, err := cst.Parse(cst.Java, []byte(source))
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	defer tree.Close()

	var badKind string
	var badByte uint
	found := false
	cst.Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		if found {
			return false
		}
		if node.IsError() || node.IsMissing() {
			found = true
			badKind = node.Kind()
			badByte = node.StartByte()
			return false
		}
		return true
	})

	if found {
		return fmt.Errorf("structural: emitted DST text is not valid Java near byte %d (kind %q)", badByte, badKind)
	}
	return nil
}
