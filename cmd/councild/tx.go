package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"okinoko_council/ledger"
)

const (
	flagTier        = "tier"
	flagTitle       = "title"
	flagDescription = "description"
	flagType        = "type"
	flagAmount      = "amount"
	flagRecipient   = "recipient"
)

// run fills sender and time from the global flags, submits r against the
// configured ledger and prints what came back.
func (a *app) run(cmd *cobra.Command, r request) error {
	r.From, _ = cmd.Flags().GetString(flagFrom)
	r.At, _ = cmd.Flags().GetUint64(flagAt)
	if r.From == "" && r.Action != "fund" {
		return errors.New("--from is required")
	}

	n, err := a.openNode()
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := submit(cmd.Context(), n.ledger, r)
	if err != nil {
		if msg, ok := ledger.AbortMessage(err); ok {
			return errors.Errorf("rejected: %s", msg)
		}
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res ledger.GroupResult) {
	if res.TxID == "" {
		fmt.Fprintln(w, "ok")
		return
	}
	fmt.Fprintf(w, "txid %s round %d\n", res.TxID, res.Round)
	for _, line := range res.Logs() {
		fmt.Fprintf(w, "log %s\n", line)
	}
	fmt.Fprintln(w, res.Return())
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	return id, errors.Wrapf(err, "proposal id %q", s)
}

func (a *app) deployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Create the council application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, request{Action: "deploy"})
		},
	}
}

func (a *app) fundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund [account] [amount]",
		Short: "Mint funds into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "amount %q", args[1])
			}
			return a.run(cmd, request{Action: "fund", Account: args[0], Amount: amount})
		},
	}
}

func (a *app) joinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the council, tier 1 sends the sponsor deposit along",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tier, _ := cmd.Flags().GetUint8(flagTier)
			return a.run(cmd, request{Action: "join", Tier: tier, Deposit: a.v.GetUint64(keySponsorDeposit)})
		},
	}
	cmd.Flags().Uint8(flagTier, 0, "0 for basic, 1 for lead")
	return cmd
}

func (a *app) proposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Create a proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := request{Action: "propose"}
			r.Title, _ = cmd.Flags().GetString(flagTitle)
			r.Description, _ = cmd.Flags().GetString(flagDescription)
			r.Type, _ = cmd.Flags().GetString(flagType)
			r.Amount, _ = cmd.Flags().GetUint64(flagAmount)
			r.Recipient, _ = cmd.Flags().GetString(flagRecipient)
			return a.run(cmd, r)
		},
	}
	cmd.Flags().String(flagTitle, "", "proposal title")
	cmd.Flags().String(flagDescription, "", "proposal description")
	cmd.Flags().String(flagType, "governance", "treasury, governance or membership")
	cmd.Flags().Uint64(flagAmount, 0, "treasury payout")
	cmd.Flags().String(flagRecipient, "", "treasury payee, defaults to the sender")
	return cmd
}

func (a *app) voteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote [id] [yes|no|abstain]",
		Short: "Vote on a proposal with your full voting power",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, request{Action: "vote", ID: id, Choice: args[1]})
		},
	}
}

func (a *app) executeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute [id]",
		Short: "Execute a passed proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, request{Action: "execute", ID: id})
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a proposal through get_proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, request{Action: "show", ID: id})
		},
	}
}

func (a *app) leaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Close out of the application, dropping membership",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, request{Action: "leave"})
		},
	}
}
