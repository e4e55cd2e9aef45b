package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/peel/color"
	"github.com/anisan-cli/peel/icon"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(episodeCmd)

	episodeCmd.Flags().IntP("season", "s", 1, "Season number")
	episodeCmd.Flags().IntP("episode", "e", 1, "Episode number within the season")
	episodeCmd.Flags().StringP("type", "t", string(source.Series), "Media type (series or movie)")
	lo.Must0(episodeCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(source.Series), string(source.Movie)}, cobra.ShellCompDirectiveDefault
	}))
	episodeCmd.Flags().BoolP("by-date", "D", false, "Match the MyAnimeList entry airing on the episode release day")
	episodeCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	episodeCmd.SetOut(os.Stdout)
}

var episodeCmd = &cobra.Command{
	Use:   "episode <id>",
	Short: "Translate a season episode into its absolute number",
	Long: `Translate a season episode into its absolute number.

The id is either an IMDb id (tt...) or a TMDB id. With --by-date the
release day of the episode is matched against MyAnimeList broadcast windows.`,
	Example: "  peel episode tt0388629 -s 2 -e 1",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			id          = args[0]
			season      = lo.Must(cmd.Flags().GetInt("season"))
			number      = lo.Must(cmd.Flags().GetInt("episode"))
			mediaType   = source.ParseMediaType(lo.Must(cmd.Flags().GetString("type")))
			asJSON      = lo.Must(cmd.Flags().GetBool("json"))
			sync        = newApp().sync
			notFoundErr = fmt.Errorf("no absolute number for %s S%02dE%02d", id, season, number)
		)

		if lo.Must(cmd.Flags().GetBool("by-date")) {
			match, ok := sync.AbsoluteByAirDate(cmd.Context(), id, mediaType, season, number).Get()
			if !ok {
				handleErr(notFoundErr)
			}

			if asJSON {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(match))
				return
			}

			cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(match.Title), style.Faint(fmt.Sprintf("(mal %d, %s)", match.MalID, match.Type)))
			if match.Episode == 0 {
				cmd.Println(style.Fg(color.Yellow)("no episode aired near the release day"))
				return
			}
			cmd.Printf("episode %s\n", style.Fg(color.Purple)(fmt.Sprint(match.Episode)))
			return
		}

		absolute, ok := sync.AbsoluteEpisode(cmd.Context(), id, mediaType, season, number).Get()
		if !ok {
			handleErr(errors.Join(notFoundErr, errors.New("keeping the season number")))
		}

		if asJSON {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int{"absolute": absolute}))
			return
		}
		cmd.Println(absolute)
	},
}
