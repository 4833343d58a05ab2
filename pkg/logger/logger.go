package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultFileName = "trading_bot.log"
	timestampFormat = "2006-01-02 15:04:05"
)

type Config struct {
	Dir          string
	FileName     string
	FileLevel    log.Level
	ConsoleLevel log.Level
	Console      io.Writer // defaults to stderr
}

// Logger is the process-wide logger. It is built once at startup and handed
// to every component that logs.
type Logger struct {
	*log.Logger
	path string
	file *os.File
}

// New opens (or creates) the log file under cfg.Dir. Entries at FileLevel and
// above go to the file, entries at ConsoleLevel and above are mirrored to the
// console.
func New(cfg Config) (*Logger, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if cfg.Console == nil {
		cfg.Console = os.Stderr
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("fail to create log dir '%s': %w", cfg.Dir, err)
	}
	path := filepath.Join(cfg.Dir, cfg.FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("fail to open log file '%s': %w", path, err)
	}

	l := NewWithWriter(file, cfg.FileLevel, cfg.Console, cfg.ConsoleLevel)
	return &Logger{Logger: l, path: path, file: file}, nil
}

// NewWithWriter builds the underlying logrus logger on arbitrary sinks.
func NewWithWriter(out io.Writer, outLevel log.Level, console io.Writer, consoleLevel log.Level) *log.Logger {
	formatter := &log.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  timestampFormat,
		DisableColors:    true,
		QuoteEmptyFields: true,
	}

	l := log.New()
	// every sink is a hook with its own threshold; logrus filters on the
	// logger level before hooks fire, so it has to admit the most verbose one
	l.SetOutput(io.Discard)
	l.SetFormatter(formatter)
	l.SetLevel(maxLevel(outLevel, consoleLevel))
	l.AddHook(&writerHook{out: out, formatter: formatter, levels: levelsUpTo(outLevel)})
	if console != nil {
		l.AddHook(&writerHook{out: console, formatter: formatter, levels: levelsUpTo(consoleLevel)})
	}
	return l
}

func (l *Logger) Path() string {
	return l.path
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel falls back to def on an empty string.
func ParseLevel(s string, def log.Level) (log.Level, error) {
	if s == "" {
		return def, nil
	}
	return log.ParseLevel(s)
}

func maxLevel(a, b log.Level) log.Level {
	if a > b {
		return a
	}
	return b
}

func levelsUpTo(threshold log.Level) []log.Level {
	levels := make([]log.Level, 0, len(log.AllLevels))
	for _, lvl := range log.AllLevels {
		if lvl <= threshold {
			levels = append(levels, lvl)
		}
	}
	return levels
}
