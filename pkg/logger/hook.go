package logger

import (
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
)

// writerHook writes formatted entries of the given levels to out.
type writerHook struct {
	mu        sync.Mutex
	out       io.Writer
	formatter log.Formatter
	levels    []log.Level
}

func (h *writerHook) Levels() []log.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *log.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}
