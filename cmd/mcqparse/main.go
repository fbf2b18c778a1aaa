package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mcq-quiz/backend/internal/quiz"
)

func main() {
	input := flag.String("input", "", "Path to a text file with generated questions (defaults to stdin)")
	output := flag.String("output", "", "Path to write JSON (defaults to stdout)")
	verbose := flag.Bool("verbose", false, "Print a summary to stderr")
	flag.Parse()

	raw, err := readInput(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parsing needs no storage.
	result := quiz.NewService(nil).Parse(string(raw))

	if *verbose {
		if result.Structured {
			fmt.Fprintf(os.Stderr, "Parsed %d questions\n", len(result.Questions))
		} else {
			fmt.Fprintln(os.Stderr, "No quiz structure found, output carries raw text only")
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	return data, nil
}
