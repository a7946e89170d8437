package logger

import (
	"encoding/json"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types as they appear in the log.
const (
	TypeSessionStart  = "session_start"
	TypeLineReceived  = "line_received"
	TypeParseError    = "parse_error"
	TypeRunCommand    = "run_command"
	TypeLaunchFailure = "launch_failure"
	TypeProcessError  = "process_error"
	TypeSessionEnd    = "session_end"
)

// Event is something that happened in a session.
type Event interface {
	eventType() string
	eventFields() map[string]interface{}
}

// SessionStart is logged once when the shell starts.
type SessionStart struct {
	Interactive bool
}

func (e *SessionStart) eventType() string { return TypeSessionStart }
func (e *SessionStart) eventFields() map[string]interface{} {
	return map[string]interface{}{"interactive": e.Interactive}
}

// LineReceived is logged for every line read.
type LineReceived struct {
	Line string
}

func (e *LineReceived) eventType() string { return TypeLineReceived }
func (e *LineReceived) eventFields() map[string]interface{} {
	return map[string]interface{}{"line": e.Line}
}

// ParseError is logged when a line is rejected.
type ParseError struct {
	Line  string
	Error string
}

func (e *ParseError) eventType() string { return TypeParseError }
func (e *ParseError) eventFields() map[string]interface{} {
	return map[string]interface{}{"line": e.Line, "error": e.Error}
}

// RunCommand is logged for each child that was started and reaped.
type RunCommand struct {
	Command      []string
	ResolvedPath string
	Pid          int
	ExitCode     int
	Signaled     bool
}

func (e *RunCommand) eventType() string { return TypeRunCommand }
func (e *RunCommand) eventFields() map[string]interface{} {
	return map[string]interface{}{
		"command":       stringList(e.Command),
		"resolved_path": e.ResolvedPath,
		"pid":           e.Pid,
		"exit_code":     e.ExitCode,
		"signaled":      e.Signaled,
	}
}

// LaunchFailure is logged for commands that couldn't be started.
type LaunchFailure struct {
	Command []string
	Error   string
}

func (e *LaunchFailure) eventType() string { return TypeLaunchFailure }
func (e *LaunchFailure) eventFields() map[string]interface{} {
	return map[string]interface{}{"command": stringList(e.Command), "error": e.Error}
}

// ProcessError is logged when forking or reaping fails.
type ProcessError struct {
	Error string
}

func (e *ProcessError) eventType() string { return TypeProcessError }
func (e *ProcessError) eventFields() map[string]interface{} {
	return map[string]interface{}{"error": e.Error}
}

// SessionEnd is logged when the shell exits.
type SessionEnd struct {
	Reason string
}

func (e *SessionEnd) eventType() string { return TypeSessionEnd }
func (e *SessionEnd) eventFields() map[string]interface{} {
	return map[string]interface{}{"reason": e.Reason}
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// LogEntry is a single line of the event log.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	Type            string
	Event           *structpb.Struct
}

func (le *LogEntry) toProto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"timestamp_micros": le.TimestampMicros,
		"session_id":       le.SessionID,
		"type":             le.Type,
		"event":            le.Event.AsMap(),
	})
}

func (le *LogEntry) fromProto(msg *structpb.Struct) error {
	fields := msg.GetFields()
	if fields == nil {
		return fmt.Errorf("empty log entry")
	}

	le.TimestampMicros = int64(fields["timestamp_micros"].GetNumberValue())
	le.SessionID = fields["session_id"].GetStringValue()
	le.Type = fields["type"].GetStringValue()
	le.Event = fields["event"].GetStructValue()
	if le.Event == nil {
		le.Event = &structpb.Struct{}
	}
	return nil
}

// GetString returns a string field of the event.
func (le *LogEntry) GetString(name string) string {
	return le.Event.GetFields()[name].GetStringValue()
}

// GetInt returns a numeric field of the event.
func (le *LogEntry) GetInt(name string) int {
	return int(le.Event.GetFields()[name].GetNumberValue())
}

// GetBool returns a boolean field of the event.
func (le *LogEntry) GetBool(name string) bool {
	return le.Event.GetFields()[name].GetBoolValue()
}

// GetStrings returns a list field of the event.
func (le *LogEntry) GetStrings(name string) []string {
	var out []string
	for _, v := range le.Event.GetFields()[name].GetListValue().GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var msg structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &msg); err != nil {
			return err
		}

		var logEntry LogEntry
		if err := logEntry.fromProto(&msg); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
