/* Copyright 2025 Revue Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package log writes structured logs as JSON lines
package log

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	fieldKeyLevel     = "level"
	fieldKeyMessage   = "msg"
	fieldKeyTimestamp = "ts"

	// LevelDebug represents debug log level
	LevelDebug = "debug"
	// LevelInfo represents info log level
	LevelInfo = "info"
	// LevelWarn represents warn log level
	LevelWarn = "warn"
	// LevelError represents error log level
	LevelError = "error"
)

var currentLevel = LevelInfo

// SetLevel sets the global log level
func SetLevel(level string) {
	currentLevel = level
}

// Fields is a set of information to be included in a log entry
type Fields map[string]interface{}

// Entry is a log entry under construction
type Entry struct {
	Fields    Fields
	Timestamp time.Time
}

// WithFields creates a log entry with the given fields
func WithFields(fields Fields) Entry {
	return Entry{
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

func levelPriority(level string) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return 1
	}
}

func shouldLog(level string) bool {
	return levelPriority(level) >= levelPriority(currentLevel)
}

func (e Entry) write(level, msg string) {
	if !shouldLog(level) {
		return
	}

	data := Fields{}
	for k, v := range e.Fields {
		data[k] = v
	}
	data[fieldKeyLevel] = level
	data[fieldKeyMessage] = msg
	data[fieldKeyTimestamp] = e.Timestamp.Format(time.RFC3339)

	b, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshalling log entry: %v\n", err)
		return
	}

	fmt.Fprintln(os.Stdout, string(b))
}

// Debug logs the given entry at a debug level
func (e Entry) Debug(msg string) {
	e.write(LevelDebug, msg)
}

// Info logs the given entry at an info level
func (e Entry) Info(msg string) {
	e.write(LevelInfo, msg)
}

// Warn logs the given entry at a warning level
func (e Entry) Warn(msg string) {
	e.write(LevelWarn, msg)
}

// Error logs the given entry at an error level
func (e Entry) Error(msg string) {
	e.write(LevelError, msg)
}

// Debug logs the given message at a debug level
func Debug(msg string) {
	WithFields(nil).Debug(msg)
}

// Info logs the given message at an info level
func Info(msg string) {
	WithFields(nil).Info(msg)
}

// Error logs the given message at an error level
func Error(msg string) {
	WithFields(nil).Error(msg)
}

// ErrorWrap logs the given error annotated with the given message
func ErrorWrap(err error, msg string) {
	Error(fmt.Sprintf("%s: %v", msg, err))
}
