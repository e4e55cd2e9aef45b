package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/anisan-cli/peel/catalog"
	"github.com/anisan-cli/peel/episode"
	"github.com/anisan-cli/peel/source"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaTargets lists the JSON documents printed by other commands.
var schemaTargets = map[string]any{
	"resolved": []source.Resolved{},
	"match":    &episode.Match{},
	"catalog":  []catalog.Entry{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [resolved|match|catalog]",
	Short:     "Print the JSON schema of the structured outputs",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		target := "resolved"
		if len(args) == 1 {
			target = args[0]
		}

		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			if t.Name() == "Entry" {
				return filepath.Base(t.PkgPath()) + "." + t.Name()
			}
			return t.Name()
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(schemaTargets[target])))
	},
}
