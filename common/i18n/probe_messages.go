package i18n

// ProbeMessages holds probe command translatable strings
type ProbeMessages struct {
	Use   string
	Short string
	Long  string

	DetectedVariant    string
	CandidateOrder     string
	ProbedBlock        string
	MapVariant         string
	MapVariantMismatch string
	ErrorFailedToProbe string
}

// English probe messages
var EnglishProbeMessages = ProbeMessages{
	Use:   "probe <image>",
	Short: "Detect the LZMA variant of an image",
	Long:  "Decode the first compressed block of an image and report which LZMA variant it uses.",

	DetectedVariant:    "Detected LZMA variant: %s",
	CandidateOrder:     "Candidate order: %s",
	ProbedBlock:        "Probed block %d (%d bytes -> %d bytes)",
	MapVariant:         "Block map variant: %s",
	MapVariantMismatch: "Warning: the block map records %s but the data decodes as %s",
	ErrorFailedToProbe: "Failed to probe image: %v",
}

// Chinese probe messages
var ChineseProbeMessages = ProbeMessages{
	Use:   "probe <image>",
	Short: "检测镜像的 LZMA 变体",
	Long:  "解码镜像的第一个压缩数据块并报告其使用的 LZMA 变体。",

	DetectedVariant:    "检测到 LZMA 变体: %s",
	CandidateOrder:     "尝试顺序: %s",
	ProbedBlock:        "已检测数据块 %d (%d 字节 -> %d 字节)",
	MapVariant:         "数据块映射记录的变体: %s",
	MapVariantMismatch: "警告: 数据块映射记录为 %s, 但数据按 %s 解码",
	ErrorFailedToProbe: "检测镜像失败: %v",
}
