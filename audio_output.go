//go:build !headless

// audio_output.go - OTO v3 audio output for the Lynx's stereo mix

package main

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

// LynxAudioOutput streams Console.DrainAudio's interleaved stereo int16
// samples to the host's audio device via OTO. Grounded on the teacher's
// OtoPlayer (audio_backend_oto.go): same NewContext/Player wiring, but
// reading from a plain mutex-guarded ring slice rather than a SoundChip's
// lock-free atomic-pointer ring, since Console has only one audio
// producer (RunFrame) and one consumer (this Reader).
type LynxAudioOutput struct {
	ctx    *oto.Context
	player *oto.Player

	mu   sync.Mutex
	ring []int16
}

func NewLynxAudioOutput(sampleRateHz int) (*LynxAudioOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRateHz,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0, // library default
	})
	if err != nil {
		return nil, err
	}
	<-ready

	out := &LynxAudioOutput{ctx: ctx}
	out.player = ctx.NewPlayer(out)
	return out, nil
}

// Push appends freshly produced samples to the ring, dropping the oldest
// samples if the host hasn't drained fast enough rather than blocking
// the emulation loop.
func (o *LynxAudioOutput) Push(samples []int16) {
	if len(samples) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ring = append(o.ring, samples...)
	const maxBuffered = 48000 * 2 // ~1 second of stereo samples
	if len(o.ring) > maxBuffered {
		o.ring = o.ring[len(o.ring)-maxBuffered:]
	}
}

// Read implements io.Reader for oto.Player, draining int16 samples as
// little-endian byte pairs and zero-filling when the ring runs dry.
func (o *LynxAudioOutput) Read(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := len(p) / 2
	if n > len(o.ring) {
		n = len(o.ring)
	}
	for i := 0; i < n; i++ {
		v := uint16(o.ring[i])
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	for i := 2 * n; i < len(p); i++ {
		p[i] = 0
	}
	o.ring = o.ring[n:]
	return len(p), nil
}

func (o *LynxAudioOutput) Start() { o.player.Play() }

func (o *LynxAudioOutput) Close() {
	o.player.Close()
}
