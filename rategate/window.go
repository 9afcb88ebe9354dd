package rategate

import (
	"strconv"
	"strings"
	"time"
)

// The admission log is serialized into a compact ASCII format:
// v1|ns1,ns2,... with admission times as unix nanoseconds in ascending order.
const logHeader = "v1|"

// encodeLog serializes admission timestamps
func encodeLog(log []time.Time) string {
	var b strings.Builder
	b.Grow(len(logHeader) + 20*len(log))
	b.WriteString(logHeader)
	for i, ts := range log {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(ts.UnixNano(), 10))
	}
	return b.String()
}

// decodeLog deserializes from compact format; returns ok=false on a foreign
// or corrupted value. An empty string decodes to an empty log.
func decodeLog(s string) ([]time.Time, bool) {
	if s == "" {
		return nil, true
	}
	if !strings.HasPrefix(s, logHeader) {
		return nil, false
	}

	data := s[len(logHeader):]
	if data == "" {
		return nil, true
	}

	parts := strings.Split(data, ",")
	log := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		ns, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, false
		}
		log = append(log, time.Unix(0, ns))
	}
	return log, true
}

// pruneLog drops timestamps at or before the cutoff. A record expires the
// instant it is exactly Window old, so a call arriving exactly one window
// after the oldest admission is admitted.
func pruneLog(log []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(log) && !log[idx].After(cutoff) {
		idx++
	}
	return log[idx:]
}
