package fault

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() FaultRecord {
	return FaultRecord{
		Timestamp:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Name:       "PaymentFailed",
		SourceFile: "fault_handler.go",
		MethodName: "handler.TriggerFaultHandler.func1",
		LineNumber: 41,
		RawTrace:   "faultproducer/src/handler.TriggerFaultHandler.func1\n\t/app/src/handler/fault_handler.go:41",
	}
}

func TestSerializeFieldOrder(t *testing.T) {
	got := Serialize(sampleRecord())
	want := "2024-01-02 03:04:05|PaymentFailed|fault_handler.go|handler.TriggerFaultHandler.func1|41|" +
		"faultproducer/src/handler.TriggerFaultHandler.func1\n\t/app/src/handler/fault_handler.go:41"
	assert.Equal(t, want, got)
}

func TestSerializeSplitRecoversFields(t *testing.T) {
	record := sampleRecord()
	record.RawTrace = "frame one | frame two|frame three"

	parts := strings.SplitN(Serialize(record), "|", 6)
	require.Len(t, parts, 6)
	assert.Equal(t, []string{
		"2024-01-02 03:04:05",
		"PaymentFailed",
		"fault_handler.go",
		"handler.TriggerFaultHandler.func1",
		"41",
		"frame one | frame two|frame three",
	}, parts)
}

func TestParseRoundTrip(t *testing.T) {
	record := sampleRecord()
	record.RawTrace = "a|b|c"

	parsed, err := Parse(Serialize(record), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, record, parsed)
}

func TestParseRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"too few fields": "2024-01-02 03:04:05|PaymentFailed|file.go",
		"bad timestamp":  "yesterday|PaymentFailed|file.go|main.run|3|trace",
		"bad line":       "2024-01-02 03:04:05|PaymentFailed|file.go|main.run|three|trace",
		"empty":          "",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(payload, time.UTC)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestSerializeNeverBlankForBuiltRecords(t *testing.T) {
	b, err := NewBuilder(DefaultCatalog())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		record, err := b.Build()
		require.NoError(t, err)

		payload := Serialize(record)
		assert.NotEmpty(t, strings.TrimSpace(payload))
		assert.Regexp(t, timestampPrefix, payload)
	}
}
