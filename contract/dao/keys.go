package dao

const (
	// kConfig stores the GlobalConfig singleton.
	kConfig byte = 0x01
	// kProposalMeta contains encoded Proposal records.
	kProposalMeta byte = 0x10
	// kProposalTally stores the yes/no/abstain totals next to each proposal.
	kProposalTally byte = 0x11
	// kVoteReceipt marks (proposal, account) pairs that already voted.
	kVoteReceipt byte = 0x20
	// kAccount is the member record inside an account's local partition.
	kAccount byte = 0x30
)

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// ConfigKey is the single global key holding GlobalConfig.
func ConfigKey() string {
	return string([]byte{kConfig})
}

// AccountKey is the local partition key of the member record.
func AccountKey() string {
	return string([]byte{kAccount})
}

// ProposalKey encodes id under the 0x10 prefix keeping metadata lumps contiguous.
func ProposalKey(id uint64) string {
	var buf [9]byte
	buf[0] = kProposalMeta
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// TallyKey sits in 0x11 so a vote only rewrites 24 bytes, never the proposal blob.
func TallyKey(id uint64) string {
	var buf [9]byte
	buf[0] = kProposalTally
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// VoteKey mixes proposal id plus address bytes to avoid nested maps in host storage.
func VoteKey(id uint64, voter Address) string {
	addr := addressString(voter)
	buf := make([]byte, 9, 9+len(addr))
	buf[0] = kVoteReceipt
	packU64LEInline(id, buf[1:])
	buf = append(buf, addr...)
	return string(buf)
}
