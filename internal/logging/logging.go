// Package logging routes the standard logger to stdout and, optionally, a
// rotating log file.
package logging

import (
	"io"
	"log"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/config"
)

// Setup points the standard logger at stdout plus cfg.File when set. The
// returned closer flushes the file sink.
func Setup(cfg config.LogConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	log.Printf("[logging] writing to stdout and %s (max %d MB)", cfg.File, cfg.MaxSizeMB)
	return rotating
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
