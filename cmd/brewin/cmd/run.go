package cmd

import (
	"fmt"
	"os"

	"github.com/brewin-lang/brewin/internal/host"
	"github.com/brewin-lang/brewin/internal/interp/evaluator"
	"github.com/brewin-lang/brewin/internal/lexer"
	"github.com/brewin-lang/brewin/internal/parser"
	"github.com/spf13/cobra"
)

var dumpAST bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Brewin source file",
	Long: `Parse and execute a Brewin program, reading standard input for
any inputi/inputs calls the program makes and writing print output to
standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the number of parsed structs and functions before running")
}

func runFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(string(content))
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if dumpAST {
		fmt.Fprintf(os.Stderr, "%d struct(s), %d function(s)\n", len(program.Structs), len(program.Functions))
	}

	h := host.NewTerminal(os.Stdout, os.Stdin)
	ev := evaluator.New(h)
	ev.Run(program)
	return nil
}
