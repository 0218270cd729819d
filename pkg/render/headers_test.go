package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"

	"go.searchlight.dev/corgi/pkg/request"
)

func TestHeaders(t *testing.T) {
	is := is.New(t)

	out := Headers([]request.Header{
		{Name: "test", Value: "success"},
		{Name: "key", Value: "val"},
		{Name: "test", Value: "again"},
	})
	is.Equal(out, "test: success\nkey: val\ntest: again")
}

func TestHeaders_Empty(t *testing.T) {
	is := is.New(t)
	is.Equal(Headers(nil), "")
}

func TestHeaders_NonTextValueRendersEmpty(t *testing.T) {
	is := is.New(t)

	out := Headers([]request.Header{
		{Name: "X-Bin", Value: "a\xffb"},
		{Name: "X-Ctl", Value: "a\x01b"},
		{Name: "X-Tab", Value: "a\tb"},
	})
	is.Equal(out, "X-Bin: \nX-Ctl: \nX-Tab: a\tb")
}

func TestHeaders_PreservesCountOrderAndPairing(t *testing.T) {
	for n := 0; n < 20; n++ {
		var hh []request.Header
		for i := 0; i < n; i++ {
			hh = append(hh, request.Header{
				Name:  fmt.Sprintf("X-H%d", (i*7)%5),
				Value: fmt.Sprintf("v%d", i),
			})
		}
		out := Headers(hh)
		if n == 0 {
			if out != "" {
				t.Fatalf("n=0: got %q", out)
			}
			continue
		}
		lines := strings.Split(out, "\n")
		if len(lines) != n {
			t.Fatalf("n=%d: got %d lines", n, len(lines))
		}
		for i, line := range lines {
			if want := hh[i].Name + ": " + hh[i].Value; line != want {
				t.Fatalf("n=%d line %d: got %q, want %q", n, i, line, want)
			}
		}
	}
}
