package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/subdu/internal/subdu"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options subdu.Options
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "subdu [flags] folder_path",
		Short: "Calculate size of all folders inside a folder.",
		Long: heredoc.Doc(`
			subdu calculates the size of all folders inside a folder.

			Every immediate subdirectory of folder_path is measured in parallel,
			summing the sizes of the regular files beneath it. Symbolic links are
			neither counted nor followed. Results are printed as each folder
			completes, so the order varies between runs.

			Press Ctrl-C to stop early; folders still being measured are abandoned.
		`),
		Version:       c.version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Workers < 0 {
				return errors.New("workers cannot be negative")
			}

			options.Path = args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env := environment{
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
				fs:     afero.NewOsFs(),
				log:    newLogger(cmd.ErrOrStderr(), debug),
				progress: !debug &&
					isatty.IsTerminal(os.Stderr.Fd()) &&
					cmd.ErrOrStderr() == os.Stderr,
			}

			return logic(ctx, options, env)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	flags.IntVarP(&options.Workers, "workers", "j", 0, "Number of folders measured in parallel (0=number of CPUs)")
	flags.BoolVar(&debug, "debug", false, "Enable debug output")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	cmd := c.Command()

	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		cmd.PrintErrln("Error:", err)
	}

	return err
}
