package fault

import "time"

// TimestampLayout renders capture instants as yyyy-MM-dd HH:mm:ss.
const TimestampLayout = "2006-01-02 15:04:05"

// FaultRecord describes one synthetic failure event.
// Records are values: every trigger builds its own and nothing mutates it afterwards.
type FaultRecord struct {
	Timestamp time.Time

	// Selected catalog entry, e.g. "OrderNotFound"
	Name string

	// Where the synthetic failure was raised
	SourceFile string
	MethodName string
	LineNumber int

	// Call stack text starting at the failure site
	RawTrace string
}
