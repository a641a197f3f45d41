package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/xishang0128/lzma-dumper/common/blockmap"
	"github.com/xishang0128/lzma-dumper/common/file"
	"github.com/xishang0128/lzma-dumper/common/i18n"
	"github.com/xishang0128/lzma-dumper/common/ziputil"
	"github.com/xishang0128/lzma-dumper/compression"
	"github.com/xishang0128/lzma-dumper/dumper"
)

// imageOptions are the flags shared by the commands that read an image.
type imageOptions struct {
	mapPath    string
	capacity   string
	entry      string
	fragile    string
	sqlzmaDict string
}

// createDumper opens the image at p and wires a fresh detection context to it.
func createDumper(p string, opts imageOptions) (*dumper.Dumper, error) {
	reader, err := file.Open(p)
	if err != nil {
		log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToOpen, err)
	}

	if opts.entry != "" {
		inner, err := ziputil.Open(reader, opts.entry)
		if err != nil {
			reader.Close()
			log.Fatalf(i18n.I18nMsg.Common.ErrorFailedToOpen, err)
		}
		reader = inner
	}

	var m *blockmap.Map
	if opts.mapPath != "" {
		if m, err = blockmap.Load(opts.mapPath); err != nil {
			reader.Close()
			return nil, err
		}
	} else {
		capacity, err := parseSizeString(opts.capacity)
		if err != nil || capacity <= 0 {
			reader.Close()
			log.Fatalf(i18n.I18nMsg.Common.ErrorInvalidSize, opts.capacity, err)
		}
		m = blockmap.Whole(reader.Size(), int(capacity))
	}

	allowFragile, err := fragileAllowed(opts.fragile)
	if err != nil {
		reader.Close()
		return nil, err
	}

	var sqlzma *compression.SqlzmaContext
	dict, err := parseSizeString(opts.sqlzmaDict)
	if err == nil {
		sqlzma, err = compression.NewSqlzmaContext(int(dict))
	}
	if err != nil {
		log.Printf(i18n.I18nMsg.Decode.SqlzmaUnavailable, err)
		sqlzma = nil
	}

	detect := dumper.NewDetectionContext(allowFragile)
	dispatcher := dumper.NewDefaultDispatcher(detect, sqlzma, logger)
	c := dumper.NewCompressor(dispatcher, m.BlockSize)

	d, err := dumper.New(reader, m, c)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return d, nil
}

// fragileAllowed resolves --fragile. "ask" prompts on the terminal.
func fragileAllowed(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "off", "no", "false":
		return false, nil
	case "on", "yes", "true":
		return true, nil
	case "ask":
		allow := false
		prompt := &survey.Confirm{
			Message: i18n.I18nMsg.Decode.FragilePrompt,
			Help:    i18n.I18nMsg.Decode.FragilePromptHelp,
			Default: false,
		}
		if err := survey.AskOne(prompt, &allow); err != nil {
			return false, fmt.Errorf(i18n.I18nMsg.Decode.ErrorPromptFailed, err)
		}
		return allow, nil
	default:
		return false, fmt.Errorf(i18n.I18nMsg.Decode.ErrorInvalidFragileMode, mode)
	}
}

// parseSizeString parses a human-friendly size string like "4M", "256K", "1G" into bytes.
// Supports suffixes: K, M, G (case-insensitive). No suffix or empty string returns 0.
func parseSizeString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	last := s[len(s)-1]
	multiplier := int64(1)
	numStr := s

	switch last {
	case 'K', 'k':
		multiplier = 1 << 10
		numStr = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1 << 20
		numStr = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1 << 30
		numStr = s[:len(s)-1]
	}

	numStr = strings.TrimSpace(numStr)
	if numStr == "" {
		return 0, fmt.Errorf("invalid size")
	}

	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, err
	}

	bytes := int64(v * float64(multiplier))
	return bytes, nil
}
