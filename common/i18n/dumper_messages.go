package i18n

// DumperMessages holds dumper package translatable strings
type DumperMessages struct {
	// Error messages
	ErrorInvalidBlockMap       string
	ErrorFailedToReadBlock     string
	ErrorShortBlockRead        string
	ErrorFailedToDecodeBlock   string
	ErrorBlockSizeMismatch     string
	ErrorFailedToWriteBlock    string
	ErrorFailedToCompressBlock string
	ErrorFailedToReadInput     string
	ErrorNoCompressedBlocks    string
	ErrorNoExpectedHash        string
	ErrorSha256Mismatch        string

	// Progress related
	BlocksSuffix string
}

// English dumper messages
var EnglishDumperMessages = DumperMessages{
	ErrorInvalidBlockMap:       "invalid block map: %w",
	ErrorFailedToReadBlock:     "failed to read block %d: %v",
	ErrorShortBlockRead:        "block %d: read %d of %d bytes",
	ErrorFailedToDecodeBlock:   "failed to decode block %d: %w",
	ErrorBlockSizeMismatch:     "block %d decoded to %d bytes, expected %d",
	ErrorFailedToWriteBlock:    "failed to write block %d: %v",
	ErrorFailedToCompressBlock: "failed to compress block %d: %w",
	ErrorFailedToReadInput:     "failed to read input: %v",
	ErrorNoCompressedBlocks:    "image has no compressed blocks",
	ErrorNoExpectedHash:        "block map has no sha256 for the decoded image",
	ErrorSha256Mismatch:        "sha256 mismatch: expected %x, got %x",

	BlocksSuffix: "blocks/s",
}

// Chinese dumper messages
var ChineseDumperMessages = DumperMessages{
	ErrorInvalidBlockMap:       "无效的数据块映射: %w",
	ErrorFailedToReadBlock:     "无法读取数据块 %d: %v",
	ErrorShortBlockRead:        "数据块 %d: 仅读取 %d / %d 字节",
	ErrorFailedToDecodeBlock:   "无法解码数据块 %d: %w",
	ErrorBlockSizeMismatch:     "数据块 %d 解码为 %d 字节，预期 %d 字节",
	ErrorFailedToWriteBlock:    "无法写入数据块 %d: %v",
	ErrorFailedToCompressBlock: "无法压缩数据块 %d: %w",
	ErrorFailedToReadInput:     "无法读取输入: %v",
	ErrorNoCompressedBlocks:    "镜像中没有压缩数据块",
	ErrorNoExpectedHash:        "数据块映射中没有解码镜像的 sha256",
	ErrorSha256Mismatch:        "sha256 不匹配: 预期 %x, 实际 %x",

	BlocksSuffix: "块/秒",
}
