// Package cli wires the mercauca command line: the storefront TUI on the
// root command plus a few account and seller subcommands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

type options struct {
	configPath   string
	apiURL       string
	reduceMotion bool

	out    io.Writer
	prompt prompter
}

// NewRootCmd builds the mercauca command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{out: os.Stdout, prompt: terminalPrompter{}})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "mercauca",
		Short: "Terminal storefront for MercaUca",
		Long: `MercaUca in the terminal: browse new arrivals and the featured
carousel, search, manage the cart and check out, or publish your own
listings.

Run without a subcommand to open the storefront.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	root.SetOut(opts.out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file path (default $XDG_CONFIG_HOME/mercauca/config.toml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "backend base URL, overrides api_url")
	flags.BoolVar(&opts.reduceMotion, "reduce-motion", false, "disable carousel autoplay")

	root.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newRegisterCmd(opts),
		newSellCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// Execute runs the command line and reports errors on stderr
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of mercauca",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.out, "mercauca %s\n", Version)
		},
	}
}
