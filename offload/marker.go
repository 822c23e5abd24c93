package offload

import (
	"fmt"
	"strings"
)

// MarkerHeader is the name under which the offload marker travels between
// an application and the host.
const MarkerHeader = "X-SSE-OFFLOAD"

// Marker names the engine a connection is handed to, along with the raw
// arguments for that engine.
type Marker struct {
	Engine string
	Args   string
}

// ParseMarker parses a marker of the form `engine` or `engine:args`.
func ParseMarker(value string) (Marker, error) {
	engine, args, _ := strings.Cut(strings.TrimSpace(value), ":")
	if engine == "" {
		return Marker{}, fmt.Errorf("%w: %q", ErrInvalidMarker, value)
	}

	return Marker{Engine: engine, Args: args}, nil
}

func (m Marker) String() string {
	if m.Args == "" {
		return m.Engine
	}

	return m.Engine + ":" + m.Args
}

// Args are the parsed arguments of an engine.
type Args map[string]string

// ParseArgs parses engine arguments. Arguments are either a comma separated
// list of key=value pairs, or a single bare value which is stored under the
// primary key of the engine.
func ParseArgs(raw, primary string) (Args, error) {
	args := Args{}

	if raw == "" {
		return args, nil
	}

	if !strings.Contains(raw, "=") {
		args[primary] = raw
		return args, nil
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArgs, item)
		}

		args[key] = value
	}

	return args, nil
}
