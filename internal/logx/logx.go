package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.CallerMarshalFunc = shortCaller
}

// NewLogger returns a zerolog logger configured for console output.
func NewLogger() zerolog.Logger {
	return New(os.Stdout)
}

// New 写到任意 io.Writer，测试里用 bytes.Buffer
func New(out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout,
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

// shortCaller 只保留文件名，补齐到 28 个字符方便对齐
func shortCaller(_ uintptr, file string, line int) string {
	short := file
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		short = file[i+1:]
	}
	return fmt.Sprintf("%-28s", fmt.Sprintf("%s:%d", short, line))
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
