package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lazypower/tastequest/internal/engine"
	"github.com/lazypower/tastequest/internal/taste"
	"github.com/lazypower/tastequest/internal/unlock"
	"github.com/spf13/cobra"
)

var jsonOutput bool

func init() {
	for _, c := range []*cobra.Command{deckCmd, decideCmd, unlockCmd, mapCmd, profileCmd, statsCmd, historyCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	}
	profileCmd.Flags().IntVarP(&profileTop, "top", "n", 5, "Number of top cuisines and tags to show")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of decisions")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func itemLabel(it taste.Item) string {
	if !it.IsUnlocked {
		return "???"
	}
	return it.Name
}

// --- deck command ---

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Show nearby places with their compatibility scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cards := a.engine.Deck(cmd.Context())
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, cards)
		}
		if len(cards) == 0 {
			fmt.Fprintln(out, "No places found nearby.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCUISINE\tPRICE\tDISTANCE\tMATCH")
		for _, c := range cards {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0fm\t%d%%\n",
				c.Item.ID, itemLabel(c.Item), c.Item.Cuisine,
				strings.Repeat("$", c.Item.EffectivePriceRange()), c.Distance, c.Compatibility)
		}
		return tw.Flush()
	},
}

// --- decide command ---

var decideCmd = &cobra.Command{
	Use:       "decide <item-id> <like|reject|wishlist|skip>",
	Short:     "Record a verdict on a place",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"like", "reject", "wishlist", "skip"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.engine.Decide(cmd.Context(), args[0], taste.DecisionKind(args[1]))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, res)
		}

		if res.Status == engine.StatusExhausted {
			fmt.Fprintln(out, "Out of energy. Unlock a nearby place on the map to restore it.")
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", args[1], res.Item.Name)
		if res.TreasureFound {
			fmt.Fprintln(out, "Treasure found! Bonus energy awarded.")
		}
		fmt.Fprintf(out, "energy: %.1f  decisions: %d\n", res.Stats.Energy, res.Stats.TotalDecisions)
		return nil
	},
}

// --- unlock command ---

var unlockCmd = &cobra.Command{
	Use:   "unlock <item-id>",
	Short: "Reveal a hidden place when you are close enough",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.engine.Unlock(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, res)
		}

		switch res.Status {
		case unlock.StatusUnlocked:
			fmt.Fprintf(out, "Unlocked %s: +%.0f energy (now %.1f)\n", args[0], res.Granted, res.Stats.Energy)
		case unlock.StatusAlreadyUnlocked:
			fmt.Fprintf(out, "%s is already unlocked\n", args[0])
		case unlock.StatusTooFar:
			fmt.Fprintf(out, "Too far to unlock %s: %.0fm away, need %.0fm or less\n", args[0], res.Distance, unlock.Radius)
		}
		return nil
	},
}

// --- favorite command ---

var favoriteCmd = &cobra.Command{
	Use:   "favorite <item-id>",
	Short: "Add an unlocked place to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.engine.Favorite(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "favorites: %s\n", strings.Join(stats.FavoriteIDs, ", "))
		return nil
	},
}

// --- map command ---

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "List every place in range and whether it can be unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		view := a.engine.Map(cmd.Context())
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, view)
		}

		fmt.Fprintf(out, "at %.4f, %.4f  unlocked %d/%d\n\n",
			view.Origin.Latitude, view.Origin.Longitude, view.Unlocked, len(view.Pins))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDISTANCE\tSTATE")
		for _, p := range view.Pins {
			state := "locked"
			switch {
			case p.Item.IsUnlocked && p.Item.IsTreasure:
				state = "treasure"
			case p.Item.IsUnlocked:
				state = "unlocked"
			case p.Unlockable:
				state = "tap to unlock"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.0fm\t%s\n", p.Item.ID, itemLabel(p.Item), p.Distance, state)
		}
		return tw.Flush()
	},
}

// --- history command ---

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 1 {
			return fmt.Errorf("--limit must be at least 1, got %d", historyLimit)
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.store.RecentDecisions(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "No decisions yet.")
			return nil
		}
		for _, r := range recs {
			at := time.UnixMilli(r.CreatedAt).Format("2006-01-02 15:04")
			fmt.Fprintf(out, "%s  %-8s %-4s %-10s energy %.1f\n", at, r.Kind, r.ItemID, r.Status, r.Energy)
		}
		return nil
	},
}
