package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bunfight/internal/client/geocode"
	"github.com/dmitrijs2005/bunfight/internal/common"
)

func newLocateCmd(app func() *App) *cobra.Command {
	var (
		lat, lon float64
		term     string
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve coordinates and look up the local word for bread",
		Example: `  bunfight locate --lat 53.8008 --lon -1.5491
  bunfight locate --lat 53.8008 --lon -1.5491 --term barm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			locality, err := a.resolver.Resolve(ctx, geocode.Coordinates{Lat: lat, Lon: lon})
			if err != nil {
				fmt.Fprintln(out, common.AwaitingLocationMessage)
				return err
			}
			fmt.Fprintln(out, locality)

			found, err := a.bread.Lookup(ctx, locality)
			switch {
			case err == nil:
				fmt.Fprintln(out, found)
				return nil
			case !errors.Is(err, common.ErrUnknown):
				return err
			}

			fmt.Fprintln(out, common.UnknownTermMessage)
			if term == "" {
				return nil
			}

			e, err := a.bread.Submit(ctx, locality, term)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, e.Term)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&term, "term", "", "term to submit when the locality is unknown")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newLookupCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <locality>",
		Short: "Print the local word for bread in a locality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := app().bread.Lookup(cmd.Context(), args[0])
			if errors.Is(err, common.ErrUnknown) {
				fmt.Fprintln(cmd.OutOrStdout(), common.UnknownTermMessage)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), term)
			return nil
		},
	}
}

func newSubmitCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <locality> <term>",
		Short: "Teach the server the local word for bread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app().bread.Submit(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.Locality, e.Term)
			return nil
		},
	}
}

func newListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every known entry in store order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := app().bread.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Locality, e.Term)
			}
			return nil
		},
	}
}
