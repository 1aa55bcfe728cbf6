package writers

import "errors"

var (
	ErrConsoleIsClosed = errors.New("console is closed")
	ErrNoWriter        = errors.New("console has no writer for this stream")
)
