package offload

import (
	"bytes"
	"io"
	"net/http"
)

var dataPrefix = []byte("data: ")

// FormatData frames a message as a server-sent event. Every line of the
// message becomes a data field, and a blank line terminates the event.
func FormatData(message []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(message) + len(dataPrefix)*(bytes.Count(message, []byte("\n"))+1) + 2)

	for {
		i := bytes.IndexByte(message, '\n')
		if i < 0 {
			break
		}

		buf.Write(dataPrefix)
		buf.Write(message[:i+1])
		message = message[i+1:]
	}

	buf.Write(dataPrefix)
	buf.Write(message)
	buf.WriteString("\n\n")

	return buf.Bytes()
}

// EventWriter writes server-sent events and flushes them to the client
// right away. It is not safe for concurrent use.
type EventWriter struct {
	w       io.Writer
	flush   func() error
	written int64
}

// NewEventWriter creates an event writer on top of w. flush is called after
// every event and may be nil.
func NewEventWriter(w io.Writer, flush func() error) *EventWriter {
	return &EventWriter{w: w, flush: flush}
}

func newResponseEventWriter(w http.ResponseWriter) *EventWriter {
	return NewEventWriter(w, http.NewResponseController(w).Flush)
}

// Send writes message as a single event.
func (e *EventWriter) Send(message []byte) error {
	n, err := e.w.Write(FormatData(message))
	e.written += int64(n)
	if err != nil {
		return err
	}

	return e.Flush()
}

// Flush flushes buffered data to the client.
func (e *EventWriter) Flush() error {
	if e.flush == nil {
		return nil
	}

	return e.flush()
}

// Written returns the number of bytes written so far.
func (e *EventWriter) Written() int64 {
	return e.written
}
