package logs

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger — общий логгер процесса.
var Logger = logrus.New()

// файл из Options.File; закрывается в Close или при повторном Init
var logFile *os.File

type Options struct {
	Level  string
	Format string // text | json
	File   string // пусто — только stderr
}

// Init настраивает Logger. Ошибки конфигурации не фатальны: пишем warning и остаёмся на дефолтах.
func Init(o Options) {
	Logger.SetOutput(os.Stderr)
	if err := Close(); err != nil {
		Logger.Warnf("close previous log file: %v", err)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(o.Level))
	if err != nil {
		lvl = logrus.InfoLevel
		if o.Level != "" {
			Logger.Warnf("unknown log level %q, using info", o.Level)
		}
	}
	Logger.SetLevel(lvl)

	switch strings.ToLower(o.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Logger.Warnf("open log file %s: %v", o.File, err)
			return
		}
		logFile = f
		Logger.SetOutput(io.MultiWriter(os.Stderr, f))
	}
}

// Close закрывает лог-файл и возвращает вывод в stderr.
func Close() error {
	if logFile == nil {
		return nil
	}
	Logger.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}
