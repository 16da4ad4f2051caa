// Package cmd defines the brewin command-line interface with cobra: a
// rootCmd holding persistent flags plus version metadata, and one file
// per subcommand.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "brewin",
	Short: "Brewin interpreter",
	Long: `brewin is a tree-walking interpreter for Brewin, a small
lexically scoped, dynamically typed language with user-defined structs,
structured exceptions, and call-by-need function arguments.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
