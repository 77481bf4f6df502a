//go:build !wasm

package dao

type Address string

func newAddress(s string) Address { return Address(s) }
func addressString(a Address) string {
	return string(a)
}
