package cli

import (
	"fmt"

	"github.com/lazypower/tastequest/internal/energy"
	"github.com/spf13/cobra"
)

var profileTop int

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the learned taste profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.engine.Summarize(cmd.Context(), profileTop)
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, s)
		}

		fmt.Fprintf(out, "spice: %.0f  budget: %.0f\n", s.Profile.SpicePreference, s.Profile.BudgetPreference)
		fmt.Fprintln(out, "\nTop cuisines:")
		if len(s.TopCuisines) == 0 {
			fmt.Fprintln(out, "  (none yet)")
		}
		for i, p := range s.TopCuisines {
			fmt.Fprintf(out, "  %d. %s (%.0f)\n", i+1, p.Name, p.Score)
		}
		fmt.Fprintln(out, "\nTop tags:")
		if len(s.TopTags) == 0 {
			fmt.Fprintln(out, "  (none yet)")
		}
		for i, p := range s.TopTags {
			fmt.Fprintf(out, "  %d. %s (%.0f)\n", i+1, p.Name, p.Score)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show energy, counters and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stats := a.engine.Stats(cmd.Context())
		achievements := energy.Achievements(stats)
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]any{
				"stats":        stats,
				"state":        stats.State().String(),
				"achievements": achievements,
			})
		}

		fmt.Fprintf(out, "energy:    %.1f/%.0f (%s)\n", stats.Energy, energy.Max, stats.State())
		fmt.Fprintf(out, "decisions: %d\n", stats.TotalDecisions)
		fmt.Fprintf(out, "treasures: %d\n", stats.TreasuresFound)
		fmt.Fprintf(out, "favorites: %d\n", len(stats.FavoriteIDs))
		fmt.Fprintf(out, "wishlist:  %d\n", len(stats.WishlistIDs))
		if len(achievements) > 0 {
			fmt.Fprintln(out, "\nAchievements:")
			for _, ach := range achievements {
				fmt.Fprintf(out, "  %s %s\n", ach.Icon, ach.Name)
			}
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:       "reset <profile|stats|all>",
	Short:     "Restore the profile or session stats to their defaults",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"profile", "stats", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		what := args[0]
		if what != "profile" && what != "stats" && what != "all" {
			return fmt.Errorf("unknown reset target %q", what)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if what == "profile" || what == "all" {
			if _, err := a.engine.ResetProfile(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "profile reset")
		}
		if what == "stats" || what == "all" {
			if _, err := a.engine.ResetStats(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "stats reset")
		}
		return nil
	},
}
