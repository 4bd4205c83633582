package environment

import (
	"os"
)

const (
	QueueWorker    = "worker"
	QueueTranscode = "transcode"
	QueueDebug     = "debug"
)

var queue = os.Getenv("QUEUE")

func GetQueue() string {
	if queue != "" {
		return queue
	}
	return QueueWorker
}

func GetWorkerQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueWorker
}

func GetTranscodeQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueTranscode
}

var workspacePrefix = os.Getenv("WORKSPACE_PREFIX")

func GetWorkspacePrefix() string {
	// For local testing
	if workspacePrefix != "" {
		return workspacePrefix
	}
	return "/mnt/workspace"
}

var tempMountPrefix = os.Getenv("TEMP_MOUNT_PREFIX")

func GetTempMountPrefix() string {
	// For local testing
	if tempMountPrefix != "" {
		return tempMountPrefix
	}
	return "/mnt/temp"
}

var fontsPrefix = os.Getenv("FONTS_PREFIX")

func GetFontsPrefix() string {
	// For local testing
	if fontsPrefix != "" {
		return fontsPrefix
	}
	return "/mnt/fonts"
}

var defaultFontName = os.Getenv("DEFAULT_FONT")

// GetDefaultFont returns the filename of the bundled fallback font, relative
// to the fonts mount. Burn-in always provisions a font, even when the user
// did not upload one.
func GetDefaultFont() string {
	if defaultFontName != "" {
		return defaultFontName
	}
	return "default.ttf"
}

var transcribeBaseURL = os.Getenv("TRANSCRIBE_BASE_URL")

func GetTranscribeBaseURL() string {
	if transcribeBaseURL != "" {
		return transcribeBaseURL
	}
	return "http://127.0.0.1:8888"
}
