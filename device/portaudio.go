//go:build device

package device

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

// Stream owns a live PortAudio duplex stream feeding an output Ring from
// a node graph and filling an input Ring from the microphone. Its serve
// loop is the one legitimate concurrency island in this module — everything
// graph-side stays single-threaded, but PortAudio's callback drives its
// own OS audio thread, so Stream hands samples across that boundary the
// way a dedicated goroutine ferries data between two independently-paced
// endpoints.
type Stream struct {
	stream     *portaudio.Stream
	out, in    *Ring
	sampleRate float64
}

// Open opens the system's default input/output device at out's form
// (sample rate and channel count), using in's channel count for capture
// and framesPerBuffer frames per callback. out and in carry their own
// sound.Form rather than the caller passing sample rate and channel
// counts separately, so a Stream can't be opened against a Ring it
// disagrees with about format.
func Open(framesPerBuffer int, out, in *Ring) (*Stream, error) {
	sampleRate := float64(out.Form().SampleRate())
	outChannels := out.Channels()
	inChannels := in.Channels()
	s := &Stream{out: out, in: in, sampleRate: sampleRate}
	stream, err := portaudio.OpenDefaultStream(inChannels, outChannels, sampleRate, framesPerBuffer, s.callback)
	if err != nil {
		return nil, fmt.Errorf("device: open stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Stream) callback(in, out []float32) {
	inChannels := s.in.Channels()
	outChannels := s.out.Channels()
	for i := 0; i < len(out); i += outChannels {
		for c := 0; c < outChannels; c++ {
			out[i+c] = s.out.ReadSample(c)
		}
	}
	if inChannels == 0 {
		return
	}
	for i := 0; i < len(in); i += inChannels {
		for c := 0; c < inChannels; c++ {
			s.in.WriteSample(c, in[i+c])
		}
	}
}

// Serve starts the stream and blocks until ctx is done, then stops and
// closes it.
func (s *Stream) Serve(ctx context.Context) error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("device: start stream: %w", err)
	}
	log.Info("device: stream started", "sampleRate", s.sampleRate)
	<-ctx.Done()
	if err := s.stream.Stop(); err != nil {
		log.Warn("device: stop stream", "err", err)
	}
	return s.stream.Close()
}

// Init/Terminate wrap portaudio's global library lifecycle calls, which
// must bracket any Stream usage.
func Init() error      { return portaudio.Initialize() }
func Terminate() error { return portaudio.Terminate() }
