// Package translate orchestrates the four-stage pipeline: parse, lower,
// emit, validate. It is a single-file, single-pass translation with no
// persisted state, logging one line per stage boundary.
package translate

import (
	"fmt"
	"log/slog"

	"github.com/addrian77/jcs-transpiler/internal/builder"
	"github.com/addrian77/jcs-transpiler/internal/cst"
	"github.com/addrian77/jcs-transpiler/internal/emitter"
	"github.com/addrian77/jcs-transpiler/internal/validate"
)

// Source lowers and emits a single SRC compilation unit's source text into
// DST text, or returns the first fatal error encountered.
func Source(source []byte) (string, error) {
	slog.Info("translate.parse", "bytes", len(source))
	tree, err := cst.Parse(cst.CSharp, source)
	if err != nil {
		return "", fmt.Errorf("parser setup: %w", err)
	}
	defer tree.Close()

	slog.Info("translate.lower")
	program, err := builder.Build(tree.RootNode(), source)
	if err != nil {
		return "", err
	}

	slog.Info("translate.emit", "classes", len(program.Classes))
	output := emitter.Emit(program)

	slog.Info("translate.validate")
	if err := validate.Validate(output); err != nil {
		return "", err
	}

	return output, nil
}
