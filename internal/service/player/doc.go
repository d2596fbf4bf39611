// Package player holds the presentation state of the player: what is playing now
// and which playlist is on screen. Results of lookups started for a scope that was
// left in the meantime are discarded.
package player
