//go:build headless

// audio_output_headless.go - no-op audio output for headless builds (testing)

package main

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

type LynxAudioOutput struct{}

func NewLynxAudioOutput(sampleRateHz int) (*LynxAudioOutput, error) {
	return &LynxAudioOutput{}, nil
}

func (o *LynxAudioOutput) Push(samples []int16) {}
func (o *LynxAudioOutput) Start()               {}
func (o *LynxAudioOutput) Close()               {}
