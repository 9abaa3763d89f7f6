// Package app is the application layer - the only component that references
// multiple domain components. Handlers route every operation through here.
//
// Failure semantics: storage errors on the read and write paths degrade to
// "no stored value" with a logged warning. The client falls back to the
// selection prompt instead of seeing an error.
package app
