package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/anisan-cli/peel/color"
	"github.com/anisan-cli/peel/icon"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/style"
	"github.com/anisan-cli/peel/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringToStringP("header", "H", nil, "Header sent with every candidate (key=value)")
	resolveCmd.Flags().StringP("referer", "r", "", "Referer of the page the candidates were found on")
	resolveCmd.Flags().BoolP("json", "j", false, "Print the resolved streams as JSON")
	resolveCmd.SetOut(os.Stdout)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>...",
	Short: "Resolve embed pages into playable streams",
	Long: `Resolve embed pages into playable streams.

Every URL is followed through host strategies, packed scripts and nested
iframes until a media URL is found. Ads are dropped from the output.`,
	Example: "  peel resolve https://vidmoly.to/embed-abc.html -r https://site.example/",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		headers := source.Headers(lo.Must(cmd.Flags().GetStringToString("header")))
		if referer := lo.Must(cmd.Flags().GetString("referer")); referer != "" {
			headers = headers.Merge(source.Headers{"Referer": referer})
		}

		streams := lo.Map(args, func(u string, i int) source.Stream {
			return source.Stream{
				Name:    fmt.Sprintf("#%d", i+1),
				URL:     u,
				Headers: headers.Clone(),
			}
		})

		resolved := newApp().resolver.ResolveAll(cmd.Context(), streams)

		if lo.Must(cmd.Flags().GetBool("json")) {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			handleErr(enc.Encode(resolved))
			return
		}

		printResolved(cmd, resolved)
	},
}

func printResolved(cmd *cobra.Command, resolved []source.Resolved) {
	if len(resolved) == 0 {
		cmd.Println(style.Faint("nothing to play"))
		return
	}

	direct := lo.CountBy(resolved, func(r source.Resolved) bool { return r.IsDirect })
	cmd.Println(style.Faint(util.Quantify(len(resolved), "stream", "streams") + ", " + fmt.Sprint(direct) + " direct"))

	for _, r := range resolved {
		mark := style.Fg(color.Yellow)(icon.Get(icon.Unresolved))
		if r.IsDirect {
			mark = style.Fg(color.Green)(icon.Get(icon.Direct))
		}

		cmd.Printf("%s %s %s\n", mark, style.Bold(r.Name), r.URL)
		if r.OriginalURL != "" && r.OriginalURL != r.URL {
			cmd.Printf("  %s %s\n", style.Faint("from"), r.OriginalURL)
		}
		keys := lo.Keys(r.Headers)
		slices.Sort(keys)
		for _, k := range keys {
			cmd.Printf("  %s %s\n", style.Fg(color.Purple)(k+":"), r.Headers[k])
		}
	}
}
