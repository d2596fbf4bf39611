// Package auth establishes and clears the session identity.
//
// A session comes either from a pasted cookie export or from an interactive
// login in a real browser driven by go-rod with stealth patches. In both cases
// the resulting cookies are written to the session store, which persists them
// and notifies its observers.
package auth
