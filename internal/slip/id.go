package slip

import (
	"fmt"
	"time"
)

// Counter names, one per slip type. Counters are never reset: the year in a
// slip id is the mint-time year while the sequence keeps growing across years.
const (
	SequenceQC       = "qc_slip_id"
	SequenceIR       = "ir_slip_id"
	SequenceCC       = "cc_slip_id"
	SequenceDispatch = "dispatch_slip_id"
)

var typePrefixes = map[Type]string{
	TypeQC:       "QC",
	TypeIR:       "IR",
	TypeCC:       "CC",
	TypeDispatch: "DIS",
}

var typeSequences = map[Type]string{
	TypeQC:       SequenceQC,
	TypeIR:       SequenceIR,
	TypeCC:       SequenceCC,
	TypeDispatch: SequenceDispatch,
}

// Prefix returns the id prefix for a slip type.
func Prefix(t Type) string {
	return typePrefixes[t]
}

// SequenceName returns the counter category that mints ids for a slip type.
func SequenceName(t Type) string {
	return typeSequences[t]
}

// FormatID renders a slip id as PREFIX-YYYY-NNNN. Sequences past 9999 widen
// the number field instead of truncating, so ids stay unique.
func FormatID(t Type, year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%04d", Prefix(t), year, sequence)
}

// MintID formats a slip id for the given moment and sequence value.
func MintID(t Type, now time.Time, sequence int64) string {
	return FormatID(t, now.Year(), sequence)
}
