//go:build !wasm

package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingHost struct {
	global map[string]string
	logs   []string
}

func (h *recordingHost) Env() Env { return Env{Sender: "alice"} }
func (h *recordingHost) Log(msg string) { h.logs = append(h.logs, msg) }
func (h *recordingHost) GetObject(key string) *string {
	if v, ok := h.global[key]; ok {
		return &v
	}
	return nil
}
func (h *recordingHost) SetObject(key, value string) { h.global[key] = value }
func (h *recordingHost) DeleteObject(key string) { delete(h.global, key) }
func (h *recordingHost) GetLocal(account Address, key string) *string { return nil }
func (h *recordingHost) SetLocal(account Address, key, value string) {}
func (h *recordingHost) DeleteLocal(account Address, key string) {}
func (h *recordingHost) Transfer(to Address, amount uint64) {}

func TestAttachRoutesCalls(t *testing.T) {
	h := &recordingHost{global: map[string]string{}}
	detach := Attach(h)
	StateSetObject("k", "v")
	Log("hello")
	assert.Equal(t, "v", *StateGetObject("k"))
	StateDeleteObject("k")
	assert.Nil(t, StateGetObject("k"))
	assert.Equal(t, Address("alice"), GetEnv().Sender)
	detach()

	assert.Equal(t, []string{"hello"}, h.logs)
	assert.Panics(t, func() { Log("no host") })
}

func TestAbortRaisesFault(t *testing.T) {
	assert.PanicsWithValue(t, Fault{Msg: "boom"}, func() { Abort("boom") })
}

func TestAddressHelpers(t *testing.T) {
	assert.Equal(t, AddressDomainApp, AppAddress(7).Domain())
	assert.Equal(t, AddressDomainUser, Address("alice").Domain())
	assert.True(t, Address("alice").IsValid())
	assert.False(t, Address("").IsValid())
	assert.False(t, Address("a b").IsValid())
	assert.False(t, Address("mallory|id:99").IsValid())
	assert.False(t, Address("|").IsValid())
}
