package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

var (
	InfoLog  *log.Logger
	ErrorLog *log.Logger
	WarnLog  *log.Logger
	DebugLog *log.Logger
	logFile  *os.File
	level    = INFO
)

const (
	INFO = iota
	DEBUG
)

// ParseLevel maps a level name to INFO or DEBUG. Unknown names mean INFO.
func ParseLevel(name string) int {
	if strings.EqualFold(strings.TrimSpace(name), "debug") {
		return DEBUG
	}
	return INFO
}

// InitLogger initializes the logger with console output and, when filename
// is not empty, a copy of every line appended to that file.
func InitLogger(filename string, lvl int) error {
	Close()

	out := io.Writer(os.Stdout)
	errOut := io.Writer(os.Stderr)
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, logFile)
		errOut = io.MultiWriter(os.Stderr, logFile)
	}

	setOutputs(out, errOut)
	level = lvl
	return nil
}

// SetOutput sends all levels to w.
func SetOutput(w io.Writer) {
	setOutputs(w, w)
}

func setOutputs(out, errOut io.Writer) {
	InfoLog = log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(errOut, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLog = log.New(errOut, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLog = log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Helper functions (kept for backward compatibility with other files)
func Init() {
	setOutputs(os.Stdout, os.Stderr)
}

func Info(format string, v ...interface{}) {
	if InfoLog == nil {
		Init()
	}
	InfoLog.Printf(format, v...)
}

func Infof(format string, v ...interface{}) {
	Info(format, v...)
}

func Error(format string, v ...interface{}) {
	if ErrorLog == nil {
		Init()
	}
	ErrorLog.Printf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	Error(format, v...)
}

func Warn(format string, v ...interface{}) {
	if WarnLog == nil {
		Init()
	}
	WarnLog.Printf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	Warn(format, v...)
}

// Debugf logs only when the level is DEBUG.
func Debugf(format string, v ...interface{}) {
	if level < DEBUG {
		return
	}
	if DebugLog == nil {
		Init()
	}
	DebugLog.Printf(format, v...)
}

// Writer returns the writer behind the info logger, for libraries that want
// an io.Writer.
func Writer() io.Writer {
	if InfoLog == nil {
		Init()
	}
	return InfoLog.Writer()
}
