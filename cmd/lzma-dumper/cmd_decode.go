package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"github.com/xishang0128/lzma-dumper/common/i18n"
	"github.com/xishang0128/lzma-dumper/dumper"
)

var (
	decodeOut     string
	decodeWorkers int
	decodeVerify  bool
	decodeOpts    imageOptions
)

func initDecodeCmd() {
	decodeCmd := &cobra.Command{
		Use:   i18n.I18nMsg.Decode.Use,
		Short: i18n.I18nMsg.Decode.Short,
		Long:  i18n.I18nMsg.Decode.Long,
		Args:  cobra.ExactArgs(1),
		Run:   runDecode,
	}

	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "output.img", i18n.I18nMsg.Common.FlagOut)
	decodeCmd.Flags().IntVarP(&decodeWorkers, "workers", "w", runtime.NumCPU(), i18n.I18nMsg.Decode.FlagWorkers)
	addImageFlags(decodeCmd, &decodeOpts)
	decodeCmd.Flags().StringVar(&decodeOpts.sqlzmaDict, "sqlzma-dict", "8M", i18n.I18nMsg.Decode.FlagSqlzmaDict)
	decodeCmd.Flags().BoolVar(&decodeVerify, "verify", true, i18n.I18nMsg.Decode.FlagVerify)

	rootCmd.AddCommand(decodeCmd)
}

func addImageFlags(cmd *cobra.Command, opts *imageOptions) {
	cmd.Flags().StringVarP(&opts.mapPath, "map", "m", "", i18n.I18nMsg.Common.FlagMap)
	cmd.Flags().StringVarP(&opts.capacity, "capacity", "c", "1M", i18n.I18nMsg.Decode.FlagCapacity)
	cmd.Flags().StringVar(&opts.entry, "entry", "", i18n.I18nMsg.Common.FlagEntry)
	cmd.Flags().StringVar(&opts.fragile, "fragile", "off", i18n.I18nMsg.Decode.FlagFragile)
}

func runDecode(cmd *cobra.Command, args []string) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		fmt.Printf(i18n.I18nMsg.Common.ElapsedTime+"\n", elapsed)
	}()

	d, err := createDumper(args[0], decodeOpts)
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToCreateDumper, err)
	}
	defer d.Close()

	if dir := filepath.Dir(decodeOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToCreateDir, err)
		}
	}
	out, err := os.Create(decodeOut)
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToCreateFile, err)
	}
	defer out.Close()

	progress := mpb.New(mpb.WithWidth(60))
	var bar *mpb.Bar
	var barMu sync.Mutex

	progressCallback := func(pi dumper.ProgressInfo) {
		barMu.Lock()
		defer barMu.Unlock()
		if bar == nil {
			desc := fmt.Sprintf("[%s](%s)", filepath.Base(args[0]), pi.SizeReadable)
			bar = progress.AddBar(int64(pi.TotalBlocks),
				mpb.PrependDecorators(
					decor.Name(desc, decor.WCSyncSpaceR),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
					decor.Counters(0, " | %d/%d"),
					decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}, decor.WCSyncSpace),
					decor.AverageSpeed(0, fmt.Sprintf(" | %%.2f %s", i18n.I18nMsg.Dumper.BlocksSuffix)),
				),
			)
		}
		if delta := int64(pi.CompletedBlocks) - bar.Current(); delta > 0 {
			bar.IncrBy(int(delta))
		}
	}

	written, err := d.Extract(out, decodeWorkers, progressCallback)
	if err != nil {
		if bar != nil {
			bar.Abort(false)
		}
		progress.Wait()
		log.Fatalf(i18n.I18nMsg.Decode.ErrorFailedToDecode, err)
	}
	progress.Wait()

	variant := "-"
	if v, ok := d.Detection().Confirmed(); ok {
		variant = v.String()
	}
	fmt.Printf(i18n.I18nMsg.Decode.DecodeCompleted+"\n", len(d.Blocks().Blocks), written, decodeOut, variant)

	if decodeVerify && d.Blocks().SHA256 != "" {
		if err := out.Sync(); err != nil {
			log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToWriteFile, err)
		}
		if err := d.Verify(decodeOut); err != nil {
			log.Fatalf(i18n.I18nMsg.Decode.ErrorVerifyFailed, err)
		}
		fmt.Println(i18n.I18nMsg.Decode.VerifyPassed)
	}
}
