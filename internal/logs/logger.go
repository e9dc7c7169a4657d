package logs

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger  *zap.SugaredLogger = zap.NewNop().Sugar()
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at debug.log inside logDir.
// Until it is called every log line is discarded, so the TUI keeps the terminal.
func Initialize(logDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	if logFile != nil {
		_ = Logger.Sync()
		logFile.Close()
	}
	logFile = f
	Logger = New(zapcore.AddSync(f), lvl)

	Logger.Infow("logger initialized", "path", logPath, "level", lvl.String())
	return nil
}

// New builds a JSON logger writing to w. Tests use it with an in-memory buffer.
func New(w zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), w, level)
	return zap.New(core, zap.AddCaller()).Named("ambient").Sugar()
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	_ = Logger.Sync()
	err := logFile.Close()
	logFile = nil
	Logger = zap.NewNop().Sugar()
	return err
}
