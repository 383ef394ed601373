package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logMaxAge       = 7 * 24 * time.Hour
	logRotationTime = 24 * time.Hour
)

/*
newLogger returns a logger writing to STDERR in console format, at debug
level when verbose and at warn level otherwise. If logDir is set, every
entry is also written in JSON to a daily rotated file in it.
*/
func newLogger(verbose bool, logDir string) (*zap.Logger, error) {
	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = timeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.Lock(os.Stderr), consoleLevel),
	}
	if logDir != "" {
		err := os.MkdirAll(logDir, 0755)
		if err != nil {
			return nil, fmt.Errorf("creating log directory %s: %v", logDir, err)
		}
		base := filepath.Join(logDir, "sapling")
		w, err := rotatelogs.New(
			base+"_%Y-%m-%d.log",
			rotatelogs.WithLinkName(base+"_last.log"),
			rotatelogs.WithMaxAge(logMaxAge),
			rotatelogs.WithRotationTime(logRotationTime),
		)
		if err != nil {
			return nil, fmt.Errorf("opening log file in %s: %v", logDir, err)
		}
		fileEncoderConfig := zap.NewProductionEncoderConfig()
		fileEncoderConfig.EncodeTime = timeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(w), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}
