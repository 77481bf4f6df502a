package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"okinoko_council/ledger"
)

// step is a request plus what the scenario expects of it.
type step struct {
	request `yaml:",inline"`

	// Expect is "ok" (default) or "fail".
	Expect string `yaml:"expect"`
	// Error must appear in the abort message of a failing step.
	Error string `yaml:"error"`
	// Return must equal the return value of a passing step.
	Return *string `yaml:"return"`
}

type scenario struct {
	Steps []step `yaml:"steps"`
}

func loadScenario(path string) (*scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &sc, nil
}

func (a *app) replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "Run a scenario of groups and check every outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			n, err := a.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			out := cmd.OutOrStdout()
			deposit := a.v.GetUint64(keySponsorDeposit)
			for i, s := range sc.Steps {
				if s.Action == "join" && s.Deposit == 0 {
					s.Deposit = deposit
				}
				res, err := submit(cmd.Context(), n.ledger, s.request)
				if err := s.check(res, err); err != nil {
					return errors.Wrapf(err, "step %d (%s by %s)", i+1, s.Action, s.From)
				}
				outcome := "ok " + res.Return()
				if err != nil {
					outcome = "failed as expected"
				}
				fmt.Fprintf(out, "step %d %s %s: %s\n", i+1, s.Action, s.From, strings.TrimSpace(outcome))
			}
			return nil
		},
	}
}

func (s step) check(res ledger.GroupResult, err error) error {
	switch s.Expect {
	case "", "ok":
		if err != nil {
			return errors.Wrap(err, "expected success")
		}
		if s.Return != nil && res.Return() != *s.Return {
			return errors.Errorf("returned %q, expected %q", res.Return(), *s.Return)
		}
	case "fail":
		if err == nil {
			return errors.New("expected failure, group committed")
		}
		if s.Error != "" && !strings.Contains(err.Error(), s.Error) {
			return errors.Errorf("failed with %q, expected %q", err.Error(), s.Error)
		}
	default:
		return errors.Errorf("unknown expectation %q", s.Expect)
	}
	return nil
}
