package dumper

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/xishang0128/lzma-dumper/common/i18n"
)

const verifyBufSize = 1 * 1024 * 1024

// Verify hashes the decoded image at path and compares it with the digest
// recorded in the block map.
func (d *Dumper) Verify(path string) error {
	expectedHex := d.blocks.SHA256
	if expectedHex == "" {
		return errors.New(i18n.I18nMsg.Dumper.ErrorNoExpectedHash)
	}

	buf := blockPool.Get(verifyBufSize)
	defer blockPool.Put(buf)

	// Windows may still hold the freshly written file; retry briefly.
	maxRetries := 1
	if runtime.GOOS == "windows" {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt*100) * time.Millisecond)
		}
		if lastErr = verifyFile(path, expectedHex, buf); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func verifyFile(path, expectedHex string, buf []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return err
	}

	sum := h.Sum(nil)
	if hex.EncodeToString(sum) != expectedHex {
		expBytes, _ := hex.DecodeString(expectedHex)
		return fmt.Errorf(i18n.I18nMsg.Dumper.ErrorSha256Mismatch, expBytes, sum)
	}
	return nil
}
