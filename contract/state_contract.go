package contract

import (
	"okinoko_council/contract/dao"
	"okinoko_council/sdk"
)

// isContractInitialized checks for the config singleton written on creation.
func isContractInitialized() bool {
	ptr := sdk.StateGetObject(dao.ConfigKey())
	return ptr != nil && *ptr != ""
}

// loadConfig reads GlobalConfig and aborts when the application was never initialized.
func loadConfig() *dao.GlobalConfig {
	ptr := sdk.StateGetObject(dao.ConfigKey())
	if ptr == nil || *ptr == "" {
		abortf(KindState, "application not initialized")
	}
	cfg, err := dao.DecodeGlobalConfig([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode config")
	}
	return cfg
}

// defaultConfig is what the first call writes.
func defaultConfig() *dao.GlobalConfig {
	return &dao.GlobalConfig{
		ProposalCount:  0,
		Treasury:       0,
		MinVotingPower: DefaultMinVotingPower,
		VotingPeriod:   DefaultVotingPeriod,
	}
}
