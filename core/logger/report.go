package logger

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions     SessionReport      `json:"session_report"`
	RunCommand   RunCommandReport   `json:"run_command_report"`
	ParseErrors  *PathCounter       `json:"parse_errors"`
	Launch       LaunchReport       `json:"launch_failure_report"`
	ProcessError ProcessErrorReport `json:"process_error_report"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		ParseErrors: NewPathCounter("error"),
		Launch: LaunchReport{
			Failures: NewPathCounter("command", "error"),
		},
	}
}

// Update adds a log entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch le.Type {
	case TypeSessionStart, TypeSessionEnd, TypeLineReceived:
		r.Sessions.update(le)
	case TypeParseError:
		r.ParseErrors.Increment(le.GetString("error"))
	case TypeRunCommand:
		r.RunCommand.update(le)
	case TypeLaunchFailure:
		r.Launch.update(le)
	case TypeProcessError:
		r.ProcessError.Errors.Increment(le.GetString("error"))
	default:
		r.InvalidEntries.Increment(le.Type)
	}
}

type SessionReport struct {
	Started     int        `json:"started"`
	Interactive int        `json:"interactive"`
	Lines       int        `json:"lines"`
	EndReasons  StrCounter `json:"end_reasons"`
}

func (r *SessionReport) update(le *LogEntry) {
	switch le.Type {
	case TypeSessionStart:
		r.Started++
		if le.GetBool("interactive") {
			r.Interactive++
		}
	case TypeLineReceived:
		r.Lines++
	case TypeSessionEnd:
		r.EndReasons.Increment(le.GetString("reason"))
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit codes of finished commands
	ExitCodes StrCounter `json:"exit_codes"`
	Signaled  int        `json:"signaled"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	r.ResolvedCommandPaths.Increment(le.GetString("resolved_path"))
	if command := le.GetStrings("command"); len(command) > 0 {
		r.CommandNames.Increment(command[0])
	}
	r.ExitCodes.Increment(strconv.Itoa(le.GetInt("exit_code")))
	if le.GetBool("signaled") {
		r.Signaled++
	}
}

type LaunchReport struct {
	Failures *PathCounter `json:"failures"`
}

func (r *LaunchReport) update(le *LogEntry) {
	name := ""
	if command := le.GetStrings("command"); len(command) > 0 {
		name = command[0]
	}
	r.Failures.Increment(name, le.GetString("error"))
}

type ProcessErrorReport struct {
	Errors StrCounter `json:"errors"`
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each combination of column values
// was seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given column values.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
