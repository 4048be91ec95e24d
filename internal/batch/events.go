package batch

import "time"

// Status captures the progress state of one input file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being evaluated.
	StatusWorking Status = "working"
	// StatusDone indicates the file was evaluated.
	StatusDone Status = "done"
	// StatusCached indicates the results came from the cache.
	StatusCached Status = "cached"
	// StatusError indicates the file could not be read.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Lines   int // evaluated lines, set on done and cached
	Failed  int // lines that failed, set on done and cached
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt on the channel, blocking until it is received.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

// OnEvent calls f(evt).
func (f SinkFunc) OnEvent(evt Event) { f(evt) }
