// Package bus is the in-process link between the player core and the audio engine.
// Events fan out to listeners, each served by its own goroutine in emission order.
// Commands go to the single registered handler.
package bus
