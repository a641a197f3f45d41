package i18n

// AppMessages holds application-level translatable strings
type AppMessages struct {
	AppDescription     string
	AppLongDescription string

	// Version command messages
	VersionTitle    string
	VersionLabel    string
	GoVersionLabel  string
	PlatformLabel   string
	DecodersLabel   string
	FragileNote     string
	VersionCmdShort string
	VersionCmdLong  string
}

// English app messages
var EnglishAppMessages = AppMessages{
	AppDescription: "LZMA variant dumper for firmware images",
	AppLongDescription: `A tool for decoding LZMA blocks of firmware images.

Vendors ship several incompatible LZMA framings. This tool detects
which one an image uses on its first block and keeps using it for
the rest of the image.`,

	VersionTitle:    "lzma-dumper",
	VersionLabel:    "Version",
	GoVersionLabel:  "Go Version",
	PlatformLabel:   "Platform",
	DecodersLabel:   "LZMA variants (in trial order)",
	FragileNote:     "lzma-wrt is only tried with --fragile on or ask",
	VersionCmdShort: "Show version information",
	VersionCmdLong:  "Display version information including the LZMA variant decoders",
}

// Chinese app messages
var ChineseAppMessages = AppMessages{
	AppDescription: "固件镜像 LZMA 变体解压工具",
	AppLongDescription: `用于解码固件镜像中 LZMA 数据块的工具。

各厂商使用多种互不兼容的 LZMA 格式。此工具在第一个数据块上
检测镜像所用的格式，并在镜像其余部分沿用该格式。`,

	VersionTitle:    "lzma-dumper",
	VersionLabel:    "版本",
	GoVersionLabel:  "Go 版本",
	PlatformLabel:   "平台",
	DecodersLabel:   "LZMA 变体 (按尝试顺序)",
	FragileNote:     "lzma-wrt 仅在 --fragile 为 on 或 ask 时尝试",
	VersionCmdShort: "显示版本信息",
	VersionCmdLong:  "显示版本信息，包括 LZMA 变体解码器",
}
