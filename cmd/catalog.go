package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anisan-cli/peel/catalog"
	"github.com/anisan-cli/peel/color"
	"github.com/anisan-cli/peel/icon"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogFindCmd)

	catalogFindCmd.Flags().Bool("tmdb", false, "Treat the argument as a TMDB id and look up its title first")
	catalogFindCmd.Flags().StringP("type", "t", string(source.Series), "Media type of the TMDB id")
	catalogFindCmd.Flags().BoolP("json", "j", false, "Print the entry as JSON")
	catalogFindCmd.SetOut(os.Stdout)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the static title catalog",
}

var catalogFindCmd = &cobra.Command{
	Use:     "find <title>...",
	Short:   "Find the catalog entry closest to a title",
	Example: "  peel catalog find shingeki no kyojin\n  peel catalog find --tmdb 1429",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			a      = newApp()
			titles = []string{strings.Join(args, " ")}
		)

		if lo.Must(cmd.Flags().GetBool("tmdb")) {
			mediaType := source.ParseMediaType(lo.Must(cmd.Flags().GetString("type")))
			t, err := a.tmdb.Titles(cmd.Context(), titles[0], mediaType)
			handleErr(err)
			titles = t
		}

		_, err := a.catalog.Entries(cmd.Context())
		handleErr(err)

		var (
			entry catalog.Entry
			ok    bool
		)
		for _, title := range titles {
			if entry, ok = a.catalog.Find(cmd.Context(), title).Get(); ok {
				break
			}
		}
		if !ok {
			handleErr(fmt.Errorf("no catalog entry matches %s", strings.Join(lo.Map(titles, func(t string, _ int) string {
				return strconv.Quote(t)
			}), ", ")))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entry))
			return
		}

		cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(entry.Title), style.Faint(fmt.Sprintf("#%d", entry.ID)))
		if entry.TitleO != "" {
			cmd.Println(style.Italic(entry.TitleO))
		}
	},
}
