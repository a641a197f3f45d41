package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xishang0128/lzma-dumper/common/file"
	"github.com/xishang0128/lzma-dumper/common/i18n"
)

var (
	rootCmd   *cobra.Command
	userAgent string
	verbose   bool
	lang      string
	logger    *slog.Logger
)

func init() {
	i18n.InitLanguage()

	rootCmd = &cobra.Command{
		Use:   "lzma-dumper",
		Short: i18n.I18nMsg.App.AppDescription,
		Long:  i18n.I18nMsg.App.AppLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if lang != "" {
				i18n.SetLanguage(i18n.ParseLanguage(lang))
			}
			if userAgent != "" {
				file.SetUserAgent(userAgent)
			}
			logger = newLogger(verbose)
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", i18n.I18nMsg.Common.FlagUserAgent)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, i18n.I18nMsg.Common.FlagVerbose)
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", i18n.I18nMsg.Common.FlagLang)

	initDecodeCmd()
	initCompressCmd()
	initProbeCmd()
	initVersionCmd()
}

// newLogger logs codec activity to stderr; --verbose adds every failed attempt.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
