package streams

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/pkg/stdcopy"
)

// LogStream merges the logs of multiple node containers into a single
// output channel, each line prefixed with the hostname of the node it
// was read from
type LogStream interface {
	// AddStream registers a node log, lines read from reader are written
	// to the output channel prefixed with name
	AddStream(name string, reader io.ReadCloser)

	// Start begins reading all registered logs concurrently
	Start() *Stream
}

// Stream is the merged output of the registered node logs
type Stream struct {
	inStreams map[string]io.ReadCloser

	// OutputStream receives the prefixed log lines
	OutputStream chan []byte

	// Err receives read errors for the node logs
	Err chan error

	// Cancel stops the readers
	Cancel context.CancelFunc
}

// NewLogStream returns an empty LogStream, register the node logs with
// AddStream before calling Start
func NewLogStream() LogStream {
	return &Stream{
		inStreams:    map[string]io.ReadCloser{},
		OutputStream: make(chan []byte),
		Err:          make(chan error),
	}
}

func (s *Stream) AddStream(name string, reader io.ReadCloser) {
	if name == "" || reader == nil {
		return
	}

	s.inStreams[name] = reader
}

func (s *Stream) Start() *Stream {
	ctx, cancel := context.WithCancel(context.Background())
	s.Cancel = cancel

	for name, reader := range s.inStreams {
		go s.readLines(ctx, name, reader)
	}

	return s
}

// readLines reads a single node log until it closes or the stream is
// cancelled. The log of a container running without a tty multiplexes
// stdout and stderr, demultiplex into a pipe before scanning lines.
func (s *Stream) readLines(ctx context.Context, name string, reader io.ReadCloser) {
	defer reader.Close()

	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, reader)
		pw.CloseWithError(err)
	}()

	scanner := bufio.NewScanner(pr)
	for scanner.Scan() {
		line := []byte(fmt.Sprintf("[%s] %s", name, scanner.Text()))

		select {
		case <-ctx.Done():
			return
		case s.OutputStream <- line:
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case <-ctx.Done():
		case s.Err <- err:
		}
	}
}
