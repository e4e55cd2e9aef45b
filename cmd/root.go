// Package cmd implements the command-line interface for peel.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/peel/color"
	"github.com/anisan-cli/peel/constant"
	"github.com/anisan-cli/peel/icon"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.CliIcons, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().IntP("depth", "d", 0, "Maximum number of nested embeds to follow")
	lo.Must0(viper.BindPFlag(key.ResolverMaxDepth, rootCmd.PersistentFlags().Lookup("depth")))
}

var rootCmd = &cobra.Command{
	Use:   constant.Peel,
	Short: "Peel embed pages down to playable streams",
	Long: style.Bold(constant.Peel) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Peel embed pages down to playable streams"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		_ = cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
