// Package engine is the audio engine actor. It owns the play queue, answers
// every command envelope exactly once and broadcasts playback events. Audio
// output sits behind the Output interface; ClockOutput only tracks position.
package engine
