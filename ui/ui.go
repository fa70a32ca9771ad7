package ui

import (
	"encoding/json"
	"io"
)

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, e.g. a resolved label
	SeverityWarn                     // yellow, e.g. a pending transaction
	SeverityError                    // red, e.g. an unknown selector
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain string so machine output never carries ANSI codes.
//
//	u.Info("Type: %s", u.Style(view.ContractType))
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all terminal output of the narrator commands. Commands write through
// TerminalUI; tests use RecordingUI and assert on what was recorded.
type UI interface {
	// Style colours t by its Severity. Without colours the plain text comes
	// back unchanged.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error reports a failure. It neither exits nor returns anything.
	Error(format string, args ...any)
	// Critical is for the line the user came for, e.g. the narrative.
	Critical(format string, args ...any)

	// Section writes a separator such as "===== Decoded call =====".
	Section(title string)

	// KeyValue renders label/value rows with the values aligned.
	KeyValue(rows [][2]string)

	// Table renders a bordered table; a nil header omits the header row.
	Table(headers []string, rows [][]string)

	// TableWithGroups is Table with a divider between groups of rows, e.g.
	// one group per transaction.
	TableWithGroups(headers []string, groups [][][]string)

	// JSON writes v as indented JSON, for --json output.
	JSON(v any) error

	// Spinner shows msg while work is in progress and returns the function
	// that stops it:
	//
	//	stop := u.Spinner("Fetching transactions...")
	//	defer stop()
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same output.
	Indent() UI

	// Writer is an io.Writer that indents every line at the current level.
	Writer() io.Writer
}
