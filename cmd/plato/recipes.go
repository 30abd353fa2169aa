package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/plato/internal/detail"
	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/landing"
	"github.com/hammamikhairi/plato/internal/search"
)

var (
	randomCount int
	searchCount int
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a batch of random recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := randomCount
		if n <= 0 {
			n = app.cfg.RandomCount
		}
		recipes, err := app.api.Random(cmd.Context(), n)
		if err != nil {
			app.log.Error("random: %v", err)
			return err
		}
		for _, r := range recipes {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "\timage: %s\n", landing.ImagePath(r.Image, app.cfg.FallbackImage))
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", landing.Preview(r.Ingredients, app.cfg.PreviewLength))
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := searchCount
		if n <= 0 {
			n = app.cfg.SearchCount
		}
		query := strings.Join(args, " ")
		res, err := app.api.Search(cmd.Context(), query, n)
		if err != nil {
			app.log.Error("search %q failed: %v", query, err)
			return fmt.Errorf("%s: %w", search.ErrorText, err)
		}
		if res == nil {
			res = &domain.SearchResultSet{}
		}
		out := search.Render(search.View{
			Enabled:  true,
			Result:   res,
			Selected: -1,
			Width:    outputWidth(),
		})
		fmt.Fprintln(cmd.OutOrStdout(), out)
		for _, r := range res.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "  (plato show %d)\n", r.ID)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recipe with its ingredients and instructions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id %q", args[0])
		}
		d, err := app.api.Information(cmd.Context(), id)
		if err != nil {
			app.log.Error("show %d: %v", id, err)
			return err
		}
		if d == nil {
			app.log.Error("show %d: empty reply", id)
			return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
		}
		fmt.Fprint(cmd.OutOrStdout(), detail.RenderBody(d, app.cfg.IngredientImageBase, outputWidth()))
		return nil
	},
}

func init() {
	randomCmd.Flags().IntVarP(&randomCount, "number", "n", 0, "number of recipes (default from config)")
	searchCmd.Flags().IntVarP(&searchCount, "number", "n", 0, "number of results (default from config)")
	rootCmd.AddCommand(randomCmd, searchCmd, showCmd)
}

// outputWidth returns the terminal column count, or 80 when stdout is
// not a terminal.
func outputWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
