package writers

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
)

// GetColorStdout returns stdout wrapped so ANSI colors also render on Windows consoles.
func GetColorStdout() io.Writer {
	return colorable.NewColorableStdout()
}

// GetColorStderr is GetColorStdout for stderr.
func GetColorStderr() io.Writer {
	return colorable.NewColorableStderr()
}

func GetDefaultStdout() io.Writer {
	return os.Stdout
}

func GetDefaultStderr() io.Writer {
	return os.Stderr
}
