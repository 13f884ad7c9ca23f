package log

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// PrettyFormatter renders entries for a human watching the terminal.
type PrettyFormatter struct{}

// Format renders a logrus entry as one colored line.
func (f *PrettyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var icon, color string
	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		icon, color = "✗", colorRed
	case logrus.WarnLevel:
		icon, color = "⚠", colorYellow
	default:
		icon, color = "•", colorGreen
		if entry.Level >= logrus.DebugLevel {
			icon, color = "·", colorGray
		}
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&fields, " %s%s%s=%v", colorCyan, k, colorReset, entry.Data[k])
	}

	line := fmt.Sprintf("%s%s%s %s%s%s %s%s\n",
		colorGray, entry.Time.Format("15:04:05"), colorReset,
		color, icon, colorReset,
		entry.Message, fields.String(),
	)
	return []byte(line), nil
}

// NewLogger creates a configured logrus logger.
func NewLogger(level string, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "pretty":
		logger.SetFormatter(&PrettyFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
