package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = newLogger(os.Stdout, false)

func newLogger(w io.Writer, jsonFormat bool) zerolog.Logger {
	if !jsonFormat {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Init 设置输出目标和格式 (json 或 console)
func Init(w io.Writer, format string) {
	level := log.GetLevel()
	log = newLogger(w, format == "json").Level(level)
}

// SetDebug 设置是否开启调试模式
func SetDebug(debug bool) {
	if debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
}

// Get 返回底层的 zerolog.Logger，用于输出结构化字段
func Get() *zerolog.Logger {
	return &log
}

// Info 打印信息日志
func Info(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

// Debug 打印调试日志
func Debug(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

// Error 打印错误日志
func Error(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

// Fatal 打印错误日志并退出
func Fatal(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}
