// Package audio defines the message protocol spoken between the player core and
// the audio engine: command names, envelope shapes and broadcast payloads.
package audio
