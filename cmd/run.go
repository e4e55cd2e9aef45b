package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/icon"
	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/luabind"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/style"
	"github.com/anisan-cli/peel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("season", "s", 1, "Season number")
	runCmd.Flags().IntP("episode", "e", 1, "Episode number within the season")
	runCmd.Flags().StringP("type", "t", string(source.Series), "Media type (series or movie)")
	runCmd.Flags().BoolP("absolute", "a", false, "Pass the absolute episode number to the script")
	runCmd.Flags().BoolP("json", "j", false, "Print the resolved streams as JSON")
	runCmd.SetOut(os.Stdout)
}

// scriptPath accepts either a path to a Lua file or the name of a script in the scripts directory.
func scriptPath(arg string) string {
	if filesystem.Exists(arg) {
		return arg
	}
	if !strings.HasSuffix(arg, ".lua") {
		arg += ".lua"
	}
	return filepath.Join(where.Scripts(), arg)
}

func installedScripts() []string {
	entries, err := filesystem.API().ReadDir(where.Scripts())
	if err != nil {
		return nil
	}

	return lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		name, ok := strings.CutSuffix(e.Name(), ".lua")
		return name, ok && !e.IsDir()
	})
}

var runCmd = &cobra.Command{
	Use:   "run <script> <id>",
	Short: "Run a Lua scraper and resolve the streams it returns",
	Long: `Run a Lua scraper and resolve the streams it returns.

A scraper defines a global Streams(id, type, season, episode) function that
returns a list of {name, url, headers} tables. The peel module gives it
access to resolve, absolute_episode, fetch and unpack.`,
	Example: "  peel run animesite tt0388629 -s 2 -e 1 --absolute",
	Args:    cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return installedScripts(), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			a         = newApp()
			id        = args[1]
			season    = lo.Must(cmd.Flags().GetInt("season"))
			number    = lo.Must(cmd.Flags().GetInt("episode"))
			mediaType = source.ParseMediaType(lo.Must(cmd.Flags().GetString("type")))
		)

		script, err := luabind.Load(scriptPath(args[0]), luabind.Bindings{
			Resolver:     a.resolver,
			Synchronizer: a.sync,
			Fetcher:      a.fetcher,
		})
		handleErr(err)
		defer script.Close()

		if lo.Must(cmd.Flags().GetBool("absolute")) {
			number = a.sync.AbsoluteEpisode(cmd.Context(), id, mediaType, season, number).OrElse(number)
		}

		l := log.For("run").With("script", script.Name)
		l.Infof("streams for %s (%s) S%02dE%02d", id, mediaType, season, number)

		streams, err := script.Streams(cmd.Context(), id, mediaType, season, number)
		if err != nil && len(streams) == 0 {
			handleErr(err)
		} else if err != nil {
			l.Warnf("%v", err)
		}

		resolved := a.resolver.ResolveAll(cmd.Context(), streams)

		if lo.Must(cmd.Flags().GetBool("json")) {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			handleErr(enc.Encode(resolved))
			return
		}

		cmd.Println(style.Title(icon.Get(icon.Lua) + " " + script.Name))
		printResolved(cmd, resolved)
	},
}
