//go:build !wasm

package sdk

// Host is the native stand-in for the wasm imports. The in-process ledger
// implements it and attaches itself for the duration of a call.
type Host interface {
	Env() Env
	Log(msg string)
	GetObject(key string) *string
	SetObject(key, value string)
	DeleteObject(key string)
	GetLocal(account Address, key string) *string
	SetLocal(account Address, key, value string)
	DeleteLocal(account Address, key string)
	Transfer(to Address, amount uint64)
}

// Fault is the panic value raised by Abort outside of wasm.
// Hosts recover it and turn it into a rejected group.
type Fault struct {
	Msg string
}

func (f Fault) Error() string { return f.Msg }

var host Host

// Attach installs h as the active host and returns a func restoring the previous one.
func Attach(h Host) (detach func()) {
	prev := host
	host = h
	return func() { host = prev }
}

func current() Host {
	if host == nil {
		panic("sdk: no host attached")
	}
	return host
}

func Log(s string) {
	current().Log(s)
}

// Abort unwinds the running call with a Fault.
func Abort(msg string) {
	panic(Fault{Msg: msg})
}

func StateSetObject(key string, value string) {
	current().SetObject(key, value)
}

func StateGetObject(key string) *string {
	return current().GetObject(key)
}

func StateDeleteObject(key string) {
	current().DeleteObject(key)
}

func LocalSetObject(account Address, key string, value string) {
	current().SetLocal(account, key, value)
}

func LocalGetObject(account Address, key string) *string {
	return current().GetLocal(account, key)
}

func LocalDeleteObject(account Address, key string) {
	current().DeleteLocal(account, key)
}

func GetEnv() Env {
	return current().Env()
}

func Transfer(to Address, amount uint64) {
	current().Transfer(to, amount)
}
