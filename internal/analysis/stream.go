package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadStream reports a cost stream that does not follow the
// "T1:0,0,1,0|T2:..." format.
var ErrBadStream = errors.New("analysis: malformed cost stream")

// FormatCostStream renders per-trick costs as a single analyzed-file
// field: tricks joined by '|', each as "T<n>:" plus comma-separated
// costs. Trick numbers are 1-based. An empty slice renders as "".
func FormatCostStream(costs [][]int) string {
	var b strings.Builder
	for t, trick := range costs {
		if t > 0 {
			b.WriteByte('|')
		}
		b.WriteByte('T')
		b.WriteString(strconv.Itoa(t + 1))
		b.WriteByte(':')
		for i, c := range trick {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(c))
		}
	}
	return b.String()
}

// ParseCostStream parses a cost stream produced by FormatCostStream.
// Empty input yields nil. Empty segments between separators are
// skipped, so trailing '|' is harmless.
func ParseCostStream(s string) ([][]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out [][]int
	for _, seg := range strings.Split(s, "|") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		label, rest, ok := strings.Cut(seg, ":")
		if !ok || len(label) < 2 || (label[0] != 'T' && label[0] != 't') {
			return nil, fmt.Errorf("%w: segment %q", ErrBadStream, seg)
		}
		if _, err := strconv.Atoi(label[1:]); err != nil {
			return nil, fmt.Errorf("%w: trick number %q", ErrBadStream, label)
		}
		var costs []int
		for _, f := range strings.Split(rest, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			c, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: cost %q", ErrBadStream, f)
			}
			costs = append(costs, c)
		}
		out = append(out, costs)
	}
	return out, nil
}
