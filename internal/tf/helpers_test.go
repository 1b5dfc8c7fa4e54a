package tf

import (
	"sync"
)

const testCollection = "http://server:8080/tfs/defaultcollection"

func testContext() *Context {
	return &Context{
		Collection:  testCollection,
		Credentials: &Credentials{Domain: "DOMAIN", User: "user", Password: "s3cret"},
	}
}

// scriptedRunner replays canned output to the listener from its own
// goroutine, the way ExecRunner does.
type scriptedRunner struct {
	stdout []string
	stderr []string
	code   int
	err    error
	// late lines arrive after the terminal event and must be dropped.
	late []string
	// exitTwice sends a second terminal event.
	exitTwice bool

	mu   sync.Mutex
	args *ArgumentBuilder
}

func (r *scriptedRunner) Start(args *ArgumentBuilder, l Listener) {
	r.mu.Lock()
	r.args = args
	r.mu.Unlock()
	go func() {
		for _, line := range r.stdout {
			l.StdoutLine(line)
		}
		for _, line := range r.stderr {
			l.StderrLine(line)
		}
		if r.err != nil {
			l.Exception(r.err)
		} else {
			l.Exit(r.code)
		}
		if r.exitTwice {
			l.Exit(r.code + 1)
		}
		for _, line := range r.late {
			l.StdoutLine(line)
		}
	}()
}

func (r *scriptedRunner) started() *ArgumentBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.args
}
