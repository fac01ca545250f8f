package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// PathKey is the field carrying the image file a log line is about.
const PathKey = "path"

// PathFields returns extra with the image path added under PathKey.
// extra may be nil.
func PathFields(path string, extra map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(extra)+1)
	for k, v := range extra {
		fields[k] = v
	}
	fields[PathKey] = path
	return fields
}

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("app", "dropclassify").
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewWriter logs to w, as JSON lines or through the console writer.
func NewWriter(w io.Writer, level zerolog.Level, jsonOutput bool) *ZerologAdapter {
	if jsonOutput {
		return NewZerolog(w, level)
	}
	return NewZerolog(zerolog.ConsoleWriter{Out: w, FieldsExclude: []string{"app"}}, level)
}

// New logs to stdout; the window has no other place to report to.
func New(level zerolog.Level, jsonOutput bool) *ZerologAdapter {
	return NewWriter(os.Stdout, level, jsonOutput)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	withFields(z.logger.Error(), component, fields).Err(err).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Debug(), component, fields).Msg(message)
}

// withFields tags the event with its component. Image paths are written
// as strings along with their base name so console output stays short
// enough to scan.
func withFields(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	for k, v := range fields {
		if path, ok := v.(string); ok && k == PathKey {
			event = event.Str(PathKey, path).Str("file", filepath.Base(path))
			continue
		}
		event = event.Interface(k, v)
	}
	return event
}
