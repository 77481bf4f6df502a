package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"okinoko_council/contract"
)

const (
	flagConfig         = "config"
	flagDataDir        = "data-dir"
	flagLogLevel       = "log-level"
	flagMySQLDSN       = "mysql-dsn"
	flagSponsorDeposit = "sponsor-deposit"
	flagFrom           = "from"
	flagAt             = "at"
	flagListen         = "listen"
	flagRedisAddr      = "redis-addr"
	flagCacheTTL       = "cache-ttl"
)

// config keys, also reachable as COUNCIL_<KEY> env vars
const (
	keyDataDir        = "data_dir"
	keyLogLevel       = "log_level"
	keyMySQLDSN       = "mysql_dsn"
	keySponsorDeposit = "sponsor_deposit"
	keyListen         = "listen"
	keyRedisAddr      = "redis_addr"
	keyCacheTTL       = "cache_ttl"
)

var flagKeys = map[string]string{
	keyDataDir:        flagDataDir,
	keyLogLevel:       flagLogLevel,
	keyMySQLDSN:       flagMySQLDSN,
	keySponsorDeposit: flagSponsorDeposit,
	keyListen:         flagListen,
	keyRedisAddr:      flagRedisAddr,
	keyCacheTTL:       flagCacheTTL,
}

// app carries what every command needs once flags are parsed.
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}
	a.v.SetEnvPrefix("COUNCIL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault(keyLogLevel, "info")
	a.v.SetDefault(keyListen, ":8080")
	a.v.SetDefault(keyCacheTTL, 30*time.Second)
	a.v.SetDefault(keySponsorDeposit, contract.SponsorDeposit)

	root := &cobra.Command{
		Use:           "councild",
		Short:         "Run and inspect an Okinoko council on a local ledger",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "optional yaml config file")
	pf.String(flagDataDir, "", "leveldb directory, empty keeps state in memory")
	pf.String(flagLogLevel, "info", "log level (debug, info, warn, error)")
	pf.String(flagMySQLDSN, "", "mysql dsn of the event indexer, empty disables it")
	pf.Uint64(flagSponsorDeposit, contract.SponsorDeposit, "amount sent along a tier 1 join")
	pf.String(flagFrom, "", "sender account")
	pf.Uint64(flagAt, 0, "ledger timestamp of the group, 0 means now")

	root.AddCommand(
		a.deployCmd(),
		a.fundCmd(),
		a.joinCmd(),
		a.proposeCmd(),
		a.voteCmd(),
		a.executeCmd(),
		a.showCmd(),
		a.leaveCmd(),
		a.serveCmd(),
		a.replayCmd(),
	)
	return root
}

// load binds flags and env, reads the config file and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	}

	level, err := logrus.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
