package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xishang0128/lzma-dumper/common/i18n"
)

var (
	probeJSON bool
	probeOpts imageOptions
)

func initProbeCmd() {
	probeCmd := &cobra.Command{
		Use:   i18n.I18nMsg.Probe.Use,
		Short: i18n.I18nMsg.Probe.Short,
		Long:  i18n.I18nMsg.Probe.Long,
		Args:  cobra.ExactArgs(1),
		Run:   runProbe,
	}

	addImageFlags(probeCmd, &probeOpts)
	probeCmd.Flags().StringVar(&probeOpts.sqlzmaDict, "sqlzma-dict", "8M", i18n.I18nMsg.Decode.FlagSqlzmaDict)
	probeCmd.Flags().BoolVarP(&probeJSON, "json", "j", false, i18n.I18nMsg.Common.FlagJSON)

	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	d, err := createDumper(args[0], probeOpts)
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToCreateDumper, err)
	}
	defer d.Close()

	res, err := d.Probe()
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Probe.ErrorFailedToProbe, err)
	}

	if probeJSON {
		data, err := json.MarshalIndent(res, "", "    ")
		if err != nil {
			log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToMarshalJSON, err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf(i18n.I18nMsg.Probe.ProbedBlock+"\n", res.Block, res.InputLength, res.OutputLength)
	variant := res.Variant
	if !res.Confirmed {
		variant = "-"
	}
	fmt.Printf(i18n.I18nMsg.Probe.DetectedVariant+"\n", variant)
	fmt.Printf(i18n.I18nMsg.Probe.CandidateOrder+"\n", strings.Join(res.CandidateOrder, ", "))
	if res.MapVariant != "" {
		fmt.Printf(i18n.I18nMsg.Probe.MapVariant+"\n", res.MapVariant)
		if res.Confirmed && !res.MapVariantMatches {
			fmt.Printf(i18n.I18nMsg.Probe.MapVariantMismatch+"\n", res.MapVariant, res.Variant)
		}
	}
}
