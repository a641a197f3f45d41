package i18n

// CommonMessages holds common translatable strings
type CommonMessages struct {
	// Error messages
	ErrorFailedToOpen         string
	ErrorFailedToCreateDumper string
	ErrorFailedToCreateDir    string
	ErrorFailedToWriteFile    string
	ErrorFailedToCreateFile   string
	ErrorFailedToMarshalJSON  string
	ErrorInvalidSize          string

	// HTTP error messages
	HTTPRemoteDoesNotSupportRanges string
	HTTPRemoteHasNoLength          string
	HTTPInvalidContentLength       string
	HTTPRemoteDidNotReturnPartial  string

	// Common flag descriptions
	FlagOut       string
	FlagJSON      string
	FlagMap       string
	FlagEntry     string
	FlagVerbose   string
	FlagLang      string
	FlagUserAgent string
	ElapsedTime   string
}

// English common messages
var EnglishCommonMessages = CommonMessages{
	ErrorFailedToOpen:         "Failed to open image: %v",
	ErrorFailedToCreateDumper: "Failed to create dumper: %v",
	ErrorFailedToCreateDir:    "Failed to create output directory: %v",
	ErrorFailedToWriteFile:    "Failed to write file: %v",
	ErrorFailedToCreateFile:   "Failed to create file: %v",
	ErrorFailedToMarshalJSON:  "Failed to marshal JSON: %v",
	ErrorInvalidSize:          "Invalid size %q: %v",

	HTTPRemoteDoesNotSupportRanges: "remote does not support ranges",
	HTTPRemoteHasNoLength:          "remote has no length",
	HTTPInvalidContentLength:       "invalid content length: %v",
	HTTPRemoteDidNotReturnPartial:  "remote did not return partial content: %d",

	FlagOut:       "output file",
	FlagJSON:      "output as JSON",
	FlagMap:       "YAML block map of the image",
	FlagEntry:     "read the image from this stored entry when the input is a zip archive",
	FlagVerbose:   "log every codec attempt",
	FlagLang:      "message language (en, zh); detected from the environment by default",
	FlagUserAgent: "User-Agent for HTTP images",
	ElapsedTime:   "Elapsed time: %s",
}

// Chinese common messages
var ChineseCommonMessages = CommonMessages{
	ErrorFailedToOpen:         "无法打开镜像: %v",
	ErrorFailedToCreateDumper: "无法创建提取器: %v",
	ErrorFailedToCreateDir:    "无法创建输出目录: %v",
	ErrorFailedToWriteFile:    "无法写入文件: %v",
	ErrorFailedToCreateFile:   "无法创建文件: %v",
	ErrorFailedToMarshalJSON:  "无法序列化JSON: %v",
	ErrorInvalidSize:          "无效的大小 %q: %v",

	HTTPRemoteDoesNotSupportRanges: "远程服务器不支持范围请求",
	HTTPRemoteHasNoLength:          "远程服务器未提供内容长度",
	HTTPInvalidContentLength:       "无效的内容长度: %v",
	HTTPRemoteDidNotReturnPartial:  "远程服务器未返回部分内容: %d",

	FlagOut:       "输出文件",
	FlagJSON:      "以JSON格式输出",
	FlagMap:       "镜像的 YAML 数据块映射",
	FlagEntry:     "输入为 zip 压缩包时，从该未压缩条目读取镜像",
	FlagVerbose:   "记录每次解码尝试",
	FlagLang:      "消息语言 (en, zh)，默认根据环境检测",
	FlagUserAgent: "HTTP 镜像使用的 User-Agent",
	ElapsedTime:   "耗时: %s",
}
