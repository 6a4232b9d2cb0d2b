//  Copyright 2023 Google Inc. All Rights Reserved.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package logging provides the logger abstraction the API clients write
// diagnostic messages through. Clients take a Logger by injection and never
// own global logging state.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	glogger "github.com/google/logger"
)

// Logger receives diagnostic messages from the API clients.
type Logger interface {
	Debugf(format string, v ...interface{})
}

// LogEntry encapsulates a single log entry.
type LogEntry struct {
	LocalTimestamp time.Time `json:"localTimestamp"`
	Message        string    `json:"message"`
}

func newLogEntry(message string) *LogEntry {
	return &LogEntry{LocalTimestamp: time.Now(), Message: message}
}

func (e *LogEntry) String() string {
	return fmt.Sprintf("%s %s", e.LocalTimestamp.Format("2006-01-02T15:04:05Z"), e.Message)
}

// PrefixLogger writes timestamped entries to stdout, prefixed per tool.
type PrefixLogger struct {
	Prefix string

	out io.Writer
}

// NewPrefixLogger creates a logger which uses prefix for all messages logged.
func NewPrefixLogger(prefix string) *PrefixLogger {
	return &PrefixLogger{Prefix: prefix, out: os.Stdout}
}

// Debugf implements Logger.
func (l *PrefixLogger) Debugf(format string, v ...interface{}) {
	w := l.out
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "%s %s\n", l.Prefix, newLogEntry(fmt.Sprintf(format, v...)))
}

// ToolLogger routes messages through github.com/google/logger, which can
// mirror them to the system log.
type ToolLogger struct {
	lg *glogger.Logger
}

// NewToolLogger initializes a google/logger backend writing to w.
// Close must be called when the logger is no longer needed.
func NewToolLogger(name string, w io.Writer) *ToolLogger {
	return &ToolLogger{lg: glogger.Init(name, false, false, w)}
}

// Debugf implements Logger.
func (l *ToolLogger) Debugf(format string, v ...interface{}) {
	l.lg.Infof(format, v...)
}

// Close releases the underlying logger.
func (l *ToolLogger) Close() {
	l.lg.Close()
}

// NopLogger discards all messages.
type NopLogger struct{}

// Debugf implements Logger.
func (NopLogger) Debugf(format string, v ...interface{}) {}
