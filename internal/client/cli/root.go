package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/bunfight/internal/client/config"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// NewRootCmd creates the top-level "bunfight" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(NewApp)
}

func newRootCmd(build factory) *cobra.Command {
	v := viper.New()
	var app *App

	root := &cobra.Command{
		Use:   "bunfight",
		Short: "Find out what the locals call bread",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(v)
			if err != nil {
				return err
			}
			app = build(c)
			return nil
		},
	}

	if err := config.Bind(v, root); err != nil {
		panic(err)
	}

	current := func() *App { return app }

	root.AddCommand(newLocateCmd(current))
	root.AddCommand(newLookupCmd(current))
	root.AddCommand(newSubmitCmd(current))
	root.AddCommand(newListCmd(current))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
