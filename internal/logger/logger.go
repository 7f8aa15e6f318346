// Package logger 分级日志（debug/info/warn/error），基于标准库 log 输出
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level 日志级别
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger 分级日志
type Logger struct {
	level  Level
	logger *log.Logger
}

var (
	mu            sync.RWMutex
	defaultLogger = newLogger(InfoLevel, "text", os.Stderr)
)

// ParseLevel 解析级别字符串，未知值按 info 处理
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func newLogger(l Level, format string, w io.Writer) *Logger {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}
	return &Logger{level: l, logger: log.New(w, "", flags)}
}

// Init 按配置初始化默认日志
func Init(level string, format string) {
	InitWithWriter(level, format, os.Stderr)
}

// InitWithWriter 指定输出目标（测试用）
func InitWithWriter(level, format string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = newLogger(ParseLevel(level), format, w)
}

func output(l Level, tag, format string, args ...interface{}) {
	mu.RLock()
	lg := defaultLogger
	mu.RUnlock()

	if lg == nil || lg.level > l {
		return
	}
	_ = lg.logger.Output(3, fmt.Sprintf("["+tag+"] "+format, args...))
}

// Debug 调试日志
func Debug(format string, args ...interface{}) {
	output(DebugLevel, "DEBUG", format, args...)
}

// Info 普通日志
func Info(format string, args ...interface{}) {
	output(InfoLevel, "INFO", format, args...)
}

// Warn 警告日志
func Warn(format string, args ...interface{}) {
	output(WarnLevel, "WARN", format, args...)
}

// Error 错误日志
func Error(format string, args ...interface{}) {
	output(ErrorLevel, "ERROR", format, args...)
}

// Fatal 输出后退出
func Fatal(format string, args ...interface{}) {
	output(ErrorLevel, "FATAL", format, args...)
	os.Exit(1)
}
