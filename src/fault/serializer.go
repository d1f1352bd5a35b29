package fault

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Delimiter separates record fields on the wire. It is not escaped inside fields.
	Delimiter  = "|"
	fieldCount = 6
)

// Serialize renders timestamp|name|sourceFile|methodName|lineNumber|rawTrace.
func Serialize(r FaultRecord) string {
	return strings.Join([]string{
		r.Timestamp.Format(TimestampLayout),
		r.Name,
		r.SourceFile,
		r.MethodName,
		strconv.Itoa(r.LineNumber),
		r.RawTrace,
	}, Delimiter)
}

// Parse reads a serialized record back. The trace is the last field, so it may contain
// the delimiter; earlier fields may not. The timestamp is read in loc (time.Local when nil).
func Parse(payload string, loc *time.Location) (FaultRecord, error) {
	if loc == nil {
		loc = time.Local
	}

	parts := strings.SplitN(payload, Delimiter, fieldCount)
	if len(parts) != fieldCount {
		return FaultRecord{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, fieldCount, len(parts))
	}

	ts, err := time.ParseInLocation(TimestampLayout, parts[0], loc)
	if err != nil {
		return FaultRecord{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedRecord, err)
	}
	line, err := strconv.Atoi(parts[4])
	if err != nil {
		return FaultRecord{}, fmt.Errorf("%w: line number: %v", ErrMalformedRecord, err)
	}

	return FaultRecord{
		Timestamp:  ts,
		Name:       parts[1],
		SourceFile: parts[2],
		MethodName: parts[3],
		LineNumber: line,
		RawTrace:   parts[5],
	}, nil
}
