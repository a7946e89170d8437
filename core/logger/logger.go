package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures session events.
type Logger struct {
	Record LogRecorder
	// Clock supplies event timestamps, time.Now if nil.
	Clock func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			msg, err := le.toProto()
			if err != nil {
				return err
			}
			entry, err := protojson.Marshal(msg)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock()
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	fields, err := structpb.NewStruct(event.eventFields())
	if err != nil {
		return err
	}

	return l.Record(&LogEntry{
		TimestampMicros: l.now().UnixMicro(),
		SessionID:       sessionID,
		Type:            event.eventType(),
		Event:           fields,
	})
}

// NewSession creates a logger with a fresh session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record writes the event to the log.
func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}

// EventRecorder stores session events.
type EventRecorder interface {
	Record(event Event) error
}

var _ EventRecorder = (*SessionLogger)(nil)

// NopEventRecorder drops every event.
type NopEventRecorder struct{}

func (NopEventRecorder) Record(Event) error {
	return nil
}
