package constant

// Set at build time with -ldflags "-X".
var (
	Version   = "unknown version"
	BuildTime = "unknown time"
)
