// Command jcs-transpiler reads input.cs from the working directory and
// writes output.java. No flags, no arguments, no environment variables.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/addrian77/jcs-transpiler/internal/translate"
)

const (
	inputFile  = "input.cs"
	outputFile = "output.java"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func run() error {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("io: reading %s: %w", inputFile, err)
	}

	output, err := translate.Source(source)
	if err != nil {
		return err
	}

	// The output file is only written once emission and validation have
	// both succeeded in full — there is no partial output.
	if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
		return fmt.Errorf("io: writing %s: %w", outputFile, err)
	}

	slog.Info("translate.done", "input", inputFile, "output", outputFile)
	return nil
}
