//go:build wasm

package sdk

import (
	"strconv"

	"github.com/CosmWasm/tinyjson"
)

//go:wasmimport sdk console.log
func log(s *string) *string

// Log writes a message to the ledger log so watchers can follow contract steps.
// Example payload: sdk.Log("mj|by:alice|tier:0|vp:1")
func Log(s string) {
	log(&s)
}

//go:wasmimport sdk db.set_object
func stateSetObject(key *string, value *string) *string

//go:wasmimport sdk db.get_object
func stateGetObject(key *string) *string

//go:wasmimport sdk db.rm_object
func stateDeleteObject(key *string) *string

//go:wasmimport sdk db.set_local
func localSetObject(account *string, key *string, value *string) *string

//go:wasmimport sdk db.get_local
func localGetObject(account *string, key *string) *string

//go:wasmimport sdk db.rm_local
func localDeleteObject(account *string, key *string) *string

//go:wasmimport sdk system.get_env
func getEnv(arg *string) *string

//go:wasmimport sdk ledger.transfer
func ledgerTransfer(to *string, amount *string) *string

//go:wasmimport env abort
func abort(msg, file *string, line, column *int32)

// Abort stops execution immediately, the host drops every write of the whole group.
// Example payload: sdk.Abort("not a member")
func Abort(msg string) {
	ln := int32(0)
	abort(&msg, nil, &ln, &ln)
	panic(msg)
}

// StateSetObject stores a key/value pair in the global partition.
// Example payload: sdk.StateSetObject("count", "5")
func StateSetObject(key string, value string) {
	stateSetObject(&key, &value)
}

// StateGetObject fetches a global key and returns nil when missing.
// Example payload: sdk.StateGetObject("count")
func StateGetObject(key string) *string {
	return stateGetObject(&key)
}

// StateDeleteObject removes the global key entirely.
// Example payload: sdk.StateDeleteObject("count")
func StateDeleteObject(key string) {
	stateDeleteObject(&key)
}

// LocalSetObject stores a value in the local partition of account.
// Example payload: sdk.LocalSetObject(sdk.Address("alice"), "acct", "...")
func LocalSetObject(account Address, key string, value string) {
	acc := account.String()
	localSetObject(&acc, &key, &value)
}

// LocalGetObject reads from the local partition of account, nil when missing.
// Example payload: sdk.LocalGetObject(sdk.Address("alice"), "acct")
func LocalGetObject(account Address, key string) *string {
	acc := account.String()
	return localGetObject(&acc, &key)
}

// LocalDeleteObject drops a key from the local partition of account.
// Example payload: sdk.LocalDeleteObject(sdk.Address("alice"), "acct")
func LocalDeleteObject(account Address, key string) {
	acc := account.String()
	localDeleteObject(&acc, &key)
}

// GetEnv pulls the json env blob from the host and maps it to Env.
// Example payload: sdk.GetEnv()
func GetEnv() Env {
	env := Env{}
	raw := getEnv(nil)
	if raw == nil {
		Abort("host returned no env")
	}
	if err := tinyjson.Unmarshal([]byte(*raw), &env); err != nil {
		Abort("malformed env: " + err.Error())
	}
	return env
}

// Transfer pays amount from the application account to the given address.
// The payment joins the running atomic group.
// Example payload: sdk.Transfer(sdk.Address("alice"), 5)
func Transfer(to Address, amount uint64) {
	toaddr := to.String()
	amt := strconv.FormatUint(amount, 10)
	ledgerTransfer(&toaddr, &amt)
}
