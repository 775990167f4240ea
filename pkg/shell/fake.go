package shell

import (
	"context"
	"sync"
)

// Fake is a scripted Runner for tests. Responses are keyed by the rendered
// command line (see Command.String); unknown commands succeed with no output.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]FakeResponse
	Calls     []Command
}

// FakeResponse is the canned result of one command line.
type FakeResponse struct {
	Stdout []byte
	Err    error
	// Do runs before the response is returned, e.g. to create output files.
	Do func(cmd Command) error
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, cmd Command) ([]byte, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	resp, ok := f.Responses[cmd.String()]
	f.mu.Unlock()

	if !ok {
		return nil, nil
	}
	if resp.Do != nil {
		if err := resp.Do(cmd); err != nil {
			return nil, err
		}
	}
	return resp.Stdout, resp.Err
}

// Ran reports whether a command line was executed.
func (f *Fake) Ran(line string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c.String() == line {
			return true
		}
	}
	return false
}

var _ Runner = (*Fake)(nil)
