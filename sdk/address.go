package sdk

import (
	"strconv"
	"strings"
)

type AddressDomain string

const (
	AddressDomainUser   AddressDomain = "user"
	AddressDomainApp    AddressDomain = "app"
	AddressDomainSystem AddressDomain = "system"
)

// appAddressPrefix marks accounts owned by a deployed application.
const appAddressPrefix = "app:"

type Address string

// String returns the literal representation (like alice or app:1) of the address.
// Example payload: sdk.Address("alice").String()
func (a Address) String() string {
	return string(a)
}

// Domain checks the prefix to tell user accounts from application accounts.
// Example payload: sdk.Address("app:1").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), appAddressPrefix) {
		return AddressDomainApp
	}
	return AddressDomainUser
}

// IsValid is a light sanity check: non-empty, no whitespace, no key or event separator.
// Example payload: sdk.Address("alice").IsValid()
func (a Address) IsValid() bool {
	s := a.String()
	if s == "" || len(s) > 64 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n/|")
}

// AppAddress derives the account an application holds its funds in.
// Example payload: sdk.AppAddress(1)
func AppAddress(appID uint64) Address {
	return Address(appAddressPrefix + strconv.FormatUint(appID, 10))
}
