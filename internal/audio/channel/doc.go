// Package channel is the player-side endpoint of the audio engine link. It turns
// command calls into correlated request/reply exchanges and fans engine broadcasts
// out to subscribers.
package channel
