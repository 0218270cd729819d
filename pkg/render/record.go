package render

import "go.searchlight.dev/corgi/pkg/request"

// Record composes one log record: the request line, the header lines and the
// already rendered body, separated by newlines.
func Record(req *request.InspectedRequest, body string) string {
	return req.RequestLine() + "\n" + Headers(req.Headers) + "\n" + body
}
