// sm3dis - Direct3D 9 shader bytecode disassembler
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sm3dis/internal/common"
	"sm3dis/internal/lister"
)

var Version = "dev"

type options struct {
	debug    bool
	dump     bool
	comments bool
	verbose  bool
}

// env holds the process streams so the command can be driven from tests.
type env struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
}

func main() {
	e := env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	os.Exit(execute(e, os.Args[1:]))
}

// execute runs the command line and returns the process exit status.
func execute(e env, args []string) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(e env) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "sm3dis [-d] <file>",
		Short: "Disassemble Direct3D 9 Shader Model 2/3 bytecode",
		Long: `Disassembles a compiled vertex or pixel shader (vs_2_0 .. ps_3_0) into a text
listing, one instruction per line. Without a file argument the bytecode is read from
standard input when it is not a terminal.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			switch {
			case len(args) == 1:
				data, err = os.ReadFile(args[0])
			case !e.isTerminal():
				data, err = io.ReadAll(e.stdin)
			default:
				cmd.SetOut(e.stdout)
				return cmd.Usage()
			}
			if err != nil {
				return err
			}

			var logger common.Logger = common.NewNoOpLogger()
			if opts.verbose {
				logger = common.NewStdLoggerWithWriter(e.stderr, common.SeverityDebug)
			}
			cfg := lister.Config{
				Debug:         opts.debug,
				Dump:          opts.dump,
				CommentBlocks: opts.comments,
				OutputWriter:  e.stdout,
				Logger:        logger,
			}
			return lister.Run(cfg, data)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetIn(e.stdin)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Precede each instruction with its byte offset")
	flags.BoolVar(&opts.dump, "dump", false, "Dump every decoded instruction as comment lines")
	flags.BoolVar(&opts.comments, "comments", false, "Size comment blocks by their comment length (CTAB blocks)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log decoder diagnostics to stderr")

	return rootCmd
}
