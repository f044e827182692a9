// Package memzero clears buffers that held secrets.
package memzero

import "runtime"

// Zero overwrites b with zeros. Copies of b made elsewhere are not touched.
//
//go:noinline
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
