package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/xishang0128/lzma-dumper/common/i18n"
	"github.com/xishang0128/lzma-dumper/compression"
	"github.com/xishang0128/lzma-dumper/constant"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: i18n.I18nMsg.App.VersionCmdShort,
	Long:  i18n.I18nMsg.App.VersionCmdLong,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s\n", i18n.I18nMsg.App.VersionTitle)
		fmt.Printf("%s: %s(%s)\n", i18n.I18nMsg.App.VersionLabel, constant.Version, constant.BuildTime)
		fmt.Printf("%s: %s\n", i18n.I18nMsg.App.GoVersionLabel, runtime.Version())
		fmt.Printf("%s: %s/%s\n", i18n.I18nMsg.App.PlatformLabel, runtime.GOOS, runtime.GOARCH)

		fmt.Printf("\n%s:\n", i18n.I18nMsg.App.DecodersLabel)
		implementations := compression.NewDecoderManager(compression.ManagerConfig{}).GetImplementationInfo()
		for i, v := range compression.Variants {
			fmt.Printf("  %d. %-11s %s\n", i+1, v.String(), implementations[v])
		}
		fmt.Printf("\n%s\n", i18n.I18nMsg.App.FragileNote)
	},
}

func initVersionCmd() {
	rootCmd.AddCommand(versionCmd)
}
