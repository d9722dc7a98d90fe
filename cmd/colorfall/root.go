package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/plus3/colorfall/ctxlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "colorfall",
	Short:        "A falling-block puzzle where colours, not rows, clear",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(viper.GetString("log-level"), viper.GetString("log-format"), os.Stderr)
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("season", "classic", "season name or alias")
	flags.String("palette", "", "palette name (defaults to the season's first palette)")
	flags.String("seasons-file", "", "HCL file replacing the built-in season catalogue")
	flags.Uint64("seed", 0, "seed for the piece sequence (random when unset)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")

	viper.SetEnvPrefix("COLORFALL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
