package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jnikula/vers/pkg/version"
)

// usageError marks flag and usage mistakes so main can map them to a
// distinct exit code.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type cliOptions struct {
	configPath  string
	file        string
	verbose     bool
	normalize   bool
	interactive bool

	cfg *Config
	log *Logger
}

// readVersion resolves the version text for a command: from --file (or the
// configured input file), stdin when the file is "-", or the first positional
// argument. It returns the text and the remaining positional arguments.
func readVersion(opts *cliOptions, cmd *cobra.Command, args []string) (string, []string, error) {
	path := opts.file
	if path == "" {
		path = opts.cfg.Input
	}

	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read version from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), args, nil
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read version file: %w", err)
		}
		opts.log.Info("read version from %s", path)
		return strings.TrimSpace(string(data)), args, nil
	}

	if len(args) == 0 {
		return "", nil, fmt.Errorf("no version given: pass one as an argument or use --file")
	}
	return args[0], args[1:], nil
}

func parseVersionArg(opts *cliOptions, cmd *cobra.Command, args []string) (*version.Version, []string, error) {
	text, rest, err := readVersion(opts, cmd, args)
	if err != nil {
		return nil, nil, err
	}
	v, err := version.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	opts.log.Debug("parsed %q", text)
	return v, rest, nil
}

func bumpVersion(opts *cliOptions, cmd *cobra.Command, args []string) error {
	v, instructions, err := parseVersionArg(opts, cmd, args)
	if err != nil {
		return err
	}

	if len(instructions) == 0 && opts.interactive {
		keyword, err := promptKeyword(v)
		if err != nil {
			return err
		}
		instructions = []string{keyword}
	}
	if len(instructions) == 0 {
		return fmt.Errorf("no bump instructions given")
	}

	for _, instruction := range instructions {
		keyword, sep := version.SplitInstruction(instruction)
		before := v.Render()
		if err := v.Bump(keyword, sep); err != nil {
			return fmt.Errorf("bump %q: %w", instruction, err)
		}
		// Only a release with nothing to strip leaves the version as is.
		if after := v.Render(); after == before {
			opts.log.Warn("%q left %s unchanged", instruction, before)
		} else {
			opts.log.Debug("bumped %q to %s", instruction, after)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderFor(opts, v))
	return nil
}

// renderFor picks the output form: the --normalize flag wins, then the
// configured output setting, then exact echo.
func renderFor(opts *cliOptions, v *version.Version) string {
	if opts.normalize || opts.cfg.Output == "normalize" {
		return v.Normalize()
	}
	return v.Render()
}

func configureCliCommands() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "vers",
		Short:         "parse, normalize and bump version strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadFromPath(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := ParseLevel(cfg.LogLevel)
			if opts.verbose {
				level = DebugLevel
			}
			opts.log = newLoggerTo(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .vers.yaml in home or current directory)")
	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "read the version from this file, \"-\" for stdin")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	bumpCmd := &cobra.Command{
		Use:   "bump [VERSION] INSTRUCTION...",
		Short: "apply bump instructions to a version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bumpVersion(opts, cmd, args)
		},
	}
	bumpCmd.Flags().BoolVarP(&opts.normalize, "normalize", "n", false, "print the canonical form instead of echoing the input style")
	bumpCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for a keyword when no instructions are given")
	// instructions may start with "-", e.g. "-dev"
	bumpCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(bumpCmd)

	normalizeCmd := &cobra.Command{
		Use:   "normalize [VERSION]",
		Short: "print the canonical form of a version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := parseVersionArg(opts, cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Normalize())
			return nil
		},
	}
	rootCmd.AddCommand(normalizeCmd)

	checkCmd := &cobra.Command{
		Use:   "check [VERSION]",
		Short: "verify that a version parses",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := parseVersionArg(opts, cmd, args)
			return err
		},
	}
	rootCmd.AddCommand(checkCmd)

	keywordsCmd := &cobra.Command{
		Use:   "keywords",
		Short: "list the accepted bump keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, keyword := range version.Keywords() {
				fmt.Fprintln(cmd.OutOrStdout(), keyword)
			}
			return nil
		},
	}
	rootCmd.AddCommand(keywordsCmd)

	convertCmd := &cobra.Command{
		Use:   "convert [VERSION]",
		Short: "print the version as strict semver",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := parseVersionArg(opts, cmd, args)
			if err != nil {
				return err
			}
			sv, err := v.Semver()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sv.String())
			return nil
		},
	}
	rootCmd.AddCommand(convertCmd)

	return rootCmd
}
