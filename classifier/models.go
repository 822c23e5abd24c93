package classifier

import "net/http"

// Request is the part of an inbound http request the classifier looks at.
type Request struct {
	Path   string
	Header http.Header
}

// Header is a single response header. Responses keep headers as an ordered
// list of pairs, so the order in which they were staged is preserved.
type Header struct {
	Name  string
	Value string
}

// Response is a staged response. A zero StatusCode means no status was
// staged, and an empty Body means no body is written.
type Response struct {
	StatusCode int
	Headers    []Header
	Body       [][]byte
}

// Staged reports whether a status or any headers were staged.
func (r Response) Staged() bool {
	return r.StatusCode != 0 || len(r.Headers) > 0
}

// Result is the outcome of classifying a request. Offload names the
// streaming engine the host hands the connection to; it is empty if the
// request is answered synchronously. An offloaded result never carries a
// body, the engine owns every write after the headers.
type Result struct {
	Response

	Offload string
}

// Offloaded reports whether the request is marked for offload.
func (r Result) Offloaded() bool {
	return r.Offload != ""
}

// Write writes the staged status, headers and body to w. A response
// without a staged status is sent as 200 OK.
func (r Response) Write(w http.ResponseWriter) error {
	for _, header := range r.Headers {
		w.Header().Add(header.Name, header.Value)
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)

	for _, chunk := range r.Body {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}

	return nil
}
