package llm

import (
	"path/filepath"
	"strings"
)

// audioMIMEType maps a recording's filename to the MIME type the backends
// want. Unknown extensions fall through to wav, which is what the browser
// recorder produces when it omits an extension.
func audioMIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	case ".mp4":
		return "video/mp4"
	default:
		return "audio/wav"
	}
}
