package logger

import (
	"fmt"
	"strings"

	"github.com/lognitor/go-callsite/callsite"
	"github.com/lognitor/go-callsite/configs"
)

// Method is one of the five fixed log categories.
type Method uint8

const (
	LOG Method = iota
	INFO
	WARN
	ERROR
	DEBUG
)

var methodNames = [...]string{
	LOG:   configs.MethodLog,
	INFO:  configs.MethodInfo,
	WARN:  configs.MethodWarn,
	ERROR: configs.MethodError,
	DEBUG: configs.MethodDebug,
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", m)
}

// ParseMethod returns the Method named s.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", configs.ErrUnknownMethod, s)
}

// Entry is everything the formatter needs for one log call.
type Entry struct {
	Method  Method
	Config  configs.MethodConfig
	Context callsite.Context
	Args    []any
}
