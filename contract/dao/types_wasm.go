//go:build wasm

package dao

import "okinoko_council/sdk"

type Address = sdk.Address

func newAddress(s string) Address { return sdk.Address(s) }
func addressString(a Address) string {
	return a.String()
}
