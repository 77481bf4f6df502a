////////////////////////////////////////////////////////////////////////////////
// Okinoko Council: tiered membership governance with a shared treasury
// The wasm build exports the application, see exports_wasm.go.
// Host tooling lives in cmd/councild.
////////////////////////////////////////////////////////////////////////////////

package main

func main() {}
