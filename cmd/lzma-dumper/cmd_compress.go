package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xishang0128/lzma-dumper/common/i18n"
	"github.com/xishang0128/lzma-dumper/dumper"
)

var (
	compressOut       string
	compressMap       string
	compressBlockSize string
)

func initCompressCmd() {
	compressCmd := &cobra.Command{
		Use:   i18n.I18nMsg.Compress.Use,
		Short: i18n.I18nMsg.Compress.Short,
		Long:  i18n.I18nMsg.Compress.Long,
		Args:  cobra.ExactArgs(1),
		Run:   runCompress,
	}

	compressCmd.Flags().StringVarP(&compressOut, "out", "o", "image.lzma", i18n.I18nMsg.Common.FlagOut)
	compressCmd.Flags().StringVarP(&compressMap, "map", "m", "", i18n.I18nMsg.Common.FlagMap)
	compressCmd.Flags().StringVarP(&compressBlockSize, "block-size", "b", "128K", i18n.I18nMsg.Compress.FlagBlockSize)

	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		fmt.Printf(i18n.I18nMsg.Common.ElapsedTime+"\n", elapsed)
	}()

	blockSize, err := parseSizeString(compressBlockSize)
	if err != nil || blockSize <= 0 {
		log.Fatalf(i18n.I18nMsg.Common.ErrorInvalidSize, compressBlockSize, err)
	}
	mapPath := compressMap
	if mapPath == "" {
		mapPath = compressOut + ".yaml"
	}

	in, err := os.Open(args[0])
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToOpen, err)
	}
	defer in.Close()

	out, err := os.Create(compressOut)
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToCreateFile, err)
	}
	defer out.Close()

	// Compression always writes the standard variant, so detection never runs.
	d := dumper.NewDefaultDispatcher(dumper.NewDetectionContext(false), nil, logger)
	c := dumper.NewCompressor(d, int(blockSize))

	w := bufio.NewWriter(out)
	m, err := dumper.CompressImage(bufio.NewReader(in), w, c, int(blockSize))
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Compress.ErrorFailedToCompress, err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToWriteFile, err)
	}

	if err := m.Save(mapPath); err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToWriteFile, err)
	}

	stored := 0
	for _, b := range m.Blocks {
		if !b.Compressed {
			stored++
		}
	}
	fmt.Printf(i18n.I18nMsg.Compress.CompressCompleted+"\n", len(m.Blocks), stored, compressOut)
	fmt.Printf(i18n.I18nMsg.Compress.BlockMapSaved+"\n", mapPath)
}
