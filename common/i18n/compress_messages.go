package i18n

// CompressMessages holds compress command translatable strings
type CompressMessages struct {
	Use   string
	Short string
	Long  string

	FlagBlockSize string

	ErrorFailedToCompress string
	CompressCompleted     string
	BlockMapSaved         string
}

// English compress messages
var EnglishCompressMessages = CompressMessages{
	Use:   "compress <input>",
	Short: "Compress a file into standard LZMA blocks",
	Long: `Split a file into blocks and compress each with the standard LZMA
framing. Blocks that do not shrink are stored uncompressed. The block
layout is written as a YAML block map for the decode command.`,

	FlagBlockSize: "block size (e.g. 128K)",

	ErrorFailedToCompress: "Failed to compress: %v",
	CompressCompleted:     "Compressed %d blocks (%d stored uncompressed) into %s",
	BlockMapSaved:         "Block map saved to %s",
}

// Chinese compress messages
var ChineseCompressMessages = CompressMessages{
	Use:   "compress <input>",
	Short: "将文件压缩为标准 LZMA 数据块",
	Long: `将文件按块切分并使用标准 LZMA 格式压缩每个数据块。无法缩小的
数据块以未压缩形式存储。数据块布局写入 YAML 数据块映射，供 decode
命令使用。`,

	FlagBlockSize: "数据块大小 (如 128K)",

	ErrorFailedToCompress: "压缩失败: %v",
	CompressCompleted:     "已压缩 %d 个数据块 (%d 个未压缩存储) 到 %s",
	BlockMapSaved:         "数据块映射已保存到 %s",
}
