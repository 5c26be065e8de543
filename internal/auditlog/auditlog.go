// Package auditlog is the out-of-scope audit sink referenced by spec §1
// ("audit-log persistence... specified only at their interface"). It
// carries no persistence of its own: the core engine never depends on it
// directly, only the cmd/zkthresh-cli demo harness does, so swapping in a
// real persistence layer never touches cryptographic code.
package auditlog

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Mode mirrors the ZKT_COMPLIANCE_MODE environment variable (spec §6):
// purely a verbosity selector, never a cryptographic one.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeFIPSL3   Mode = "fips-l3"
	ModeCCEAL4   Mode = "cc-eal4"
	ModeCustom   Mode = "custom"
)

// ParseMode validates the ZKT_COMPLIANCE_MODE value, defaulting to
// ModeStandard for an unset or unrecognized value.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeFIPSL3, ModeCCEAL4, ModeCustom:
		return Mode(s)
	default:
		return ModeStandard
	}
}

// Logger writes one line per event to an io.Writer (stderr by default).
// Entries never carry secret material; callers pass an operation name
// and a non-secret detail such as a key id, a state, a share count, or an
// error's category and correlation id (spec §7).
type Logger struct {
	w    io.Writer
	mode Mode
}

// New returns a Logger writing to os.Stderr under the given mode.
func New(mode Mode) *Logger {
	return &Logger{w: os.Stderr, mode: mode}
}

// Record emits one audit line: timestamp, mode, operation, correlation id.
func (l *Logger) Record(op string, correlationID string) {
	fmt.Fprintf(l.w, "%s op=%s mode=%s ref=%s\n", time.Now().UTC().Format(time.RFC3339), op, l.mode, correlationID)
}
