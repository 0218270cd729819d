package render

import (
	"strings"

	"go.searchlight.dev/corgi/pkg/request"
)

// Headers renders one "<name>: <value>" line per header, in the order given,
// joined by newlines. A value that is not printable text renders empty.
func Headers(headers []request.Header) string {
	lines := make([]string, 0, len(headers))
	for _, h := range headers {
		v, _ := headerText(h.Value)
		lines = append(lines, h.Name+": "+v)
	}
	return strings.Join(lines, "\n")
}

// headerText returns v if every byte is visible ASCII or a tab, and false
// otherwise.
func headerText(v string) (string, bool) {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b != '\t' && (b < 0x20 || b > 0x7e) {
			return "", false
		}
	}
	return v, true
}
