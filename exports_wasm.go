//go:build wasm

package main

import (
	"okinoko_council/contract"
)

// Approve runs once per application call. Everything the call needs, arguments
// and group included, comes from the env; the payload is unused.
//
//go:wasmexport approve
func Approve(_ *string) *string {
	ret := contract.Approve()
	return &ret
}
