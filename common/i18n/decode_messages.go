package i18n

// DecodeMessages holds decode command translatable strings
type DecodeMessages struct {
	Use   string
	Short string
	Long  string

	FlagCapacity   string
	FlagWorkers    string
	FlagFragile    string
	FlagSqlzmaDict string
	FlagVerify     string

	FragilePrompt           string
	FragilePromptHelp       string
	ErrorPromptFailed       string
	ErrorInvalidFragileMode string
	SqlzmaUnavailable       string
	ErrorFailedToDecode     string
	DecodeCompleted         string
	VerifyPassed            string
	ErrorVerifyFailed       string
}

// English decode messages
var EnglishDecodeMessages = DecodeMessages{
	Use:   "decode <image>",
	Short: "Decode the LZMA blocks of an image",
	Long: `Decode every block of an image and write the uncompressed data.

Without --map the whole image is one block of at most --capacity bytes.
Blocks are decoded one by one until the LZMA variant is detected; the
remaining blocks are then decoded in parallel.`,

	FlagCapacity:   "output capacity when the image is a single block (e.g. 128K, 1M)",
	FlagWorkers:    "number of workers once the variant is detected",
	FlagFragile:    "whether the fragile lzma-wrt decoder may run: off, on or ask",
	FlagSqlzmaDict: "dictionary limit of the sqlzma decoder (e.g. 8M)",
	FlagVerify:     "check the decoded image against the sha256 in the block map",

	FragilePrompt:           "Allow the DD-WRT lzma decoder? It may crash or hang on other images.",
	FragilePromptHelp:       "Only answer yes for images built by DD-WRT.",
	ErrorPromptFailed:       "Prompt failed: %v",
	ErrorInvalidFragileMode: "Invalid --fragile value %q (want off, on or ask)",
	SqlzmaUnavailable:       "sqlzma decoder unavailable: %v",
	ErrorFailedToDecode:     "Failed to decode image: %v",
	DecodeCompleted:         "Decoded %d blocks (%d bytes) to %s using LZMA variant %s",
	VerifyPassed:            "sha256 verified",
	ErrorVerifyFailed:       "Verification failed: %v",
}

// Chinese decode messages
var ChineseDecodeMessages = DecodeMessages{
	Use:   "decode <image>",
	Short: "解码镜像中的 LZMA 数据块",
	Long: `解码镜像的所有数据块并写出解压后的数据。

未指定 --map 时，整个镜像视为一个最多 --capacity 字节的数据块。
在检测到 LZMA 变体之前逐个解码数据块，之后其余数据块并行解码。`,

	FlagCapacity:   "镜像为单个数据块时的输出容量 (如 128K, 1M)",
	FlagWorkers:    "检测到变体后使用的工作线程数",
	FlagFragile:    "是否允许不稳定的 lzma-wrt 解码器: off, on 或 ask",
	FlagSqlzmaDict: "sqlzma 解码器的字典上限 (如 8M)",
	FlagVerify:     "根据数据块映射中的 sha256 校验解码后的镜像",

	FragilePrompt:           "是否启用 DD-WRT lzma 解码器? 它可能在其他镜像上崩溃或卡死。",
	FragilePromptHelp:       "仅对 DD-WRT 构建的镜像选择是。",
	ErrorPromptFailed:       "提示失败: %v",
	ErrorInvalidFragileMode: "无效的 --fragile 值 %q (应为 off, on 或 ask)",
	SqlzmaUnavailable:       "sqlzma 解码器不可用: %v",
	ErrorFailedToDecode:     "解码镜像失败: %v",
	DecodeCompleted:         "已解码 %d 个数据块 (%d 字节) 到 %s，LZMA 变体 %s",
	VerifyPassed:            "sha256 校验通过",
	ErrorVerifyFailed:       "校验失败: %v",
}
