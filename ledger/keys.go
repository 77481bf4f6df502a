package ledger

import (
	"encoding/binary"

	"okinoko_council/sdk"
)

// Store layout. Account names never contain '/', see sdk.Address.IsValid.
const (
	prefixGlobal  = "g/"
	prefixLocal   = "l/"
	prefixBalance = "b/"
	metaApp       = "m/app"
	metaRound     = "m/round"
	metaTimestamp = "m/ts"
)

func globalKey(key string) []byte {
	return []byte(prefixGlobal + key)
}

func localPrefix(account sdk.Address) []byte {
	return []byte(prefixLocal + account.String() + "/")
}

func localKey(account sdk.Address, key string) []byte {
	return append(localPrefix(account), key...)
}

func balanceKey(account sdk.Address) []byte {
	return []byte(prefixBalance + account.String())
}

func encodeU64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func decodeU64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
