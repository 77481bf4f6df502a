package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"okinoko_council/sdk"
)

// Program is an application entry point. It runs once per application call with
// the sdk host attached and returns the call's return value, or aborts.
type Program func() string

// Payment moves native funds between two accounts.
type Payment struct {
	From   sdk.Address
	To     sdk.Address
	Amount uint64
}

// AppCall invokes the application. Create is only set on the deploying call.
type AppCall struct {
	Sender       sdk.Address
	OnCompletion sdk.OnCompletion
	Args         [][]byte
	Create       bool
}

// Txn is one entry of an atomic group, exactly one of Payment and Call is set.
type Txn struct {
	Payment *Payment
	Call    *AppCall
}

// Pay is shorthand for a payment entry.
func Pay(from, to sdk.Address, amount uint64) Txn {
	return Txn{Payment: &Payment{From: from, To: to, Amount: amount}}
}

// Call is shorthand for a plain application call.
func Call(sender sdk.Address, args [][]byte) Txn {
	return Txn{Call: &AppCall{Sender: sender, OnCompletion: sdk.NoOp, Args: args}}
}

// Hook is shorthand for a lifecycle call without arguments.
func Hook(sender sdk.Address, oc sdk.OnCompletion) Txn {
	return Txn{Call: &AppCall{Sender: sender, OnCompletion: oc}}
}

// Group is a set of transactions that commit or abort as a unit.
// A zero Timestamp means "now" according to the ledger clock. An explicit one
// must not precede the last committed group.
type Group struct {
	Timestamp uint64
	Txns      []Txn
}

type CallResult struct {
	Index    int
	Return   string
	Logs     []string
	Payments []Payment
}

type GroupResult struct {
	TxID      string
	Round     uint64
	Timestamp uint64
	Calls     []CallResult
}

// Logs returns every application log line of the group in order.
func (r GroupResult) Logs() []string {
	var out []string
	for _, c := range r.Calls {
		out = append(out, c.Logs...)
	}
	return out
}

// Return is the return value of the last application call.
func (r GroupResult) Return() string {
	if len(r.Calls) == 0 {
		return ""
	}
	return r.Calls[len(r.Calls)-1].Return
}

// Ledger is a single-application, in-process stand-in for the chain. Groups are
// evaluated one at a time; readers see committed state only.
type Ledger struct {
	mu      sync.RWMutex
	store   Store
	program Program
	log     *logrus.Entry
	metrics *Metrics
	clock   func() uint64
	actions map[string]bool
	hooks   []func(GroupResult)

	appID  uint64
	round  uint64
	lastTS uint64
}

type Option func(*Ledger)

func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) {
		l.log = logger.WithField("component", "ledger")
	}
}

func WithMetrics(m *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithClock sets the timestamp source for groups that do not carry one.
func WithClock(clock func() uint64) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithActionLabels lists the action names metrics may use as label values,
// everything else is counted as "other".
func WithActionLabels(names ...string) Option {
	return func(l *Ledger) {
		for _, n := range names {
			l.actions[n] = true
		}
	}
}

// OnCommit registers fn to run after every committed group, outside the ledger lock.
func OnCommit(fn func(GroupResult)) Option {
	return func(l *Ledger) {
		l.hooks = append(l.hooks, fn)
	}
}

// New opens a ledger over store and restores round, clock and deployment from it.
func New(store Store, program Program, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:   store,
		program: program,
		log:     logrus.NewEntry(logrus.StandardLogger()).WithField("component", "ledger"),
		clock:   func() uint64 { return uint64(time.Now().Unix()) },
		actions: map[string]bool{},
	}
	for _, opt := range opts {
		opt(l)
	}
	for key, dst := range map[string]*uint64{metaApp: &l.appID, metaRound: &l.round, metaTimestamp: &l.lastTS} {
		raw, err := store.Get([]byte(key))
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", key)
		}
		*dst = decodeU64(raw)
	}
	return l, nil
}

func (l *Ledger) Close() error {
	return l.store.Close()
}

// Deploy runs the creating call.
func (l *Ledger) Deploy(ctx context.Context, creator sdk.Address, timestamp uint64) (GroupResult, error) {
	return l.SubmitGroup(ctx, Group{
		Timestamp: timestamp,
		Txns:      []Txn{{Call: &AppCall{Sender: creator, Create: true}}},
	})
}

// Fund mints amount into account outside of any group, a genesis style faucet.
func (l *Ledger) Fund(account sdk.Address, amount uint64) error {
	if !account.IsValid() {
		return errors.Wrapf(ErrInvalidAccount, "%q", account)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	raw, err := l.store.Get(balanceKey(account))
	if err != nil {
		return err
	}
	bal := decodeU64(raw)
	if bal > ^uint64(0)-amount {
		return errors.Errorf("balance overflow for %s", account)
	}
	b := &Batch{}
	b.Put(balanceKey(account), encodeU64(bal+amount))
	if err := l.store.Write(b); err != nil {
		return errors.Wrap(err, "fund")
	}
	l.log.WithFields(logrus.Fields{"account": account, "amount": amount}).Debug("account funded")
	return nil
}

// SubmitGroup evaluates g against a staged copy of the state and commits it only
// when every payment cleared and no application call aborted.
func (l *Ledger) SubmitGroup(ctx context.Context, g Group) (GroupResult, error) {
	if err := ctx.Err(); err != nil {
		return GroupResult{}, err
	}
	if len(g.Txns) == 0 {
		return GroupResult{}, ErrEmptyGroup
	}

	start := time.Now()
	l.mu.Lock()
	res, err := l.submitLocked(g)
	l.mu.Unlock()

	outcome := outcomeCommitted
	entry := l.log.WithFields(logrus.Fields{"txid": res.TxID, "round": res.Round, "size": len(g.Txns)})
	if err != nil {
		outcome = outcomeRejected
		entry.WithError(err).Warn("group rejected")
	} else {
		for _, line := range res.Logs() {
			entry.WithField("log", line).Debug("application log")
		}
		entry.Info("group committed")
	}
	l.metrics.observeGroup(outcome, time.Since(start).Seconds())
	if err != nil {
		return res, err
	}

	for _, hook := range l.hooks {
		hook(res)
	}
	return res, nil
}

func (l *Ledger) submitLocked(g Group) (GroupResult, error) {
	ts := g.Timestamp
	switch {
	case ts == 0:
		// ledger time never runs backwards, even if the clock does
		ts = max(l.clock(), l.lastTS)
	case ts < l.lastTS:
		return GroupResult{Round: l.round + 1, Timestamp: ts}, errors.Wrapf(ErrStaleTimestamp, "%d is before %d", ts, l.lastTS)
	}
	res := GroupResult{TxID: uuid.NewString(), Round: l.round + 1, Timestamp: ts}

	view := make([]sdk.Txn, len(g.Txns))
	for i, txn := range g.Txns {
		switch {
		case txn.Payment != nil && txn.Call == nil:
			p := txn.Payment
			if !p.From.IsValid() || !p.To.IsValid() {
				return res, errors.Wrapf(ErrInvalidAccount, "txn %d", i)
			}
			view[i] = sdk.Txn{Type: sdk.TxnPayment, Sender: p.From, Receiver: p.To, Amount: p.Amount}
		case txn.Call != nil && txn.Payment == nil:
			if !txn.Call.Sender.IsValid() {
				return res, errors.Wrapf(ErrInvalidAccount, "txn %d", i)
			}
			view[i] = sdk.Txn{Type: sdk.TxnAppCall, Sender: txn.Call.Sender}
		default:
			return res, errors.Errorf("txn %d must be either a payment or a call", i)
		}
	}

	ov := newOverlay(l.store)
	appID := l.appID
	for i, txn := range g.Txns {
		if txn.Payment != nil {
			if err := applyPayment(ov, *txn.Payment); err != nil {
				return res, errors.Wrapf(err, "txn %d", i)
			}
			continue
		}

		call := txn.Call
		if call.Create {
			if appID != 0 {
				return res, ErrAlreadyDeployed
			}
			appID = 1
			ov.put([]byte(metaApp), encodeU64(appID))
		} else if appID == 0 {
			return res, ErrNotDeployed
		}

		host := &callHost{ov: ov, env: sdk.Env{
			AppID:        appID,
			AppAddress:   sdk.AppAddress(appID),
			TxId:         fmt.Sprintf("%s:%d", res.TxID, i),
			Round:        res.Round,
			Timestamp:    ts,
			Sender:       call.Sender,
			OnCompletion: call.OnCompletion,
			Creating:     call.Create,
			Args:         call.Args,
			GroupIndex:   i,
			Group:        view,
		}}
		ret, abortMsg := l.run(host)
		action := l.actionLabel(call)
		if abortMsg != "" {
			l.metrics.observeCall(action, outcomeRejected)
			return res, &AbortError{TxID: res.TxID, Index: i, Msg: abortMsg}
		}
		l.metrics.observeCall(action, outcomeCommitted)

		if call.OnCompletion == sdk.CloseOut || call.OnCompletion == sdk.ClearState {
			if err := ov.deletePrefix(localPrefix(call.Sender)); err != nil {
				return res, errors.Wrap(err, "clear local state")
			}
		}
		res.Calls = append(res.Calls, CallResult{Index: i, Return: ret, Logs: host.logs, Payments: host.payments})
	}

	ov.put([]byte(metaRound), encodeU64(res.Round))
	ov.put([]byte(metaTimestamp), encodeU64(ts))
	if err := l.store.Write(ov.batch()); err != nil {
		return res, errors.Wrap(err, "commit group")
	}
	l.appID = appID
	l.round = res.Round
	l.lastTS = ts

	if l.metrics != nil {
		raw, err := l.store.Get(balanceKey(sdk.AppAddress(appID)))
		if err == nil {
			l.metrics.setState(l.round, decodeU64(raw))
		}
	}
	return res, nil
}

// hostMu serializes program runs across ledgers, the sdk has a single attached host.
var hostMu sync.Mutex

// run executes the program with h attached and converts aborts and runtime
// panics into an abort message.
func (l *Ledger) run(h *callHost) (ret string, abortMsg string) {
	hostMu.Lock()
	defer hostMu.Unlock()
	detach := sdk.Attach(h)
	defer detach()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(sdk.Fault); ok {
			abortMsg = f.Msg
		} else {
			abortMsg = fmt.Sprintf("runtime panic: %v", r)
		}
		if abortMsg == "" {
			abortMsg = "aborted"
		}
	}()
	return l.program(), ""
}

func (l *Ledger) actionLabel(call *AppCall) string {
	switch {
	case call.Create:
		return "create"
	case call.OnCompletion != sdk.NoOp:
		return call.OnCompletion.String()
	case len(call.Args) > 0 && l.actions[string(call.Args[0])]:
		return string(call.Args[0])
	default:
		return "other"
	}
}

// -----------------------------------------------------------------------------
// Readers
// -----------------------------------------------------------------------------

// Reader is a consistent view of committed state.
type Reader interface {
	Global(key string) (*string, error)
	Local(account sdk.Address, key string) (*string, error)
	Balance(account sdk.Address) (uint64, error)
	AppAddress() (sdk.Address, bool)
	Round() uint64
	Timestamp() uint64
}

// View runs fn against committed state. Groups wait until fn returns.
func (l *Ledger) View(fn func(Reader) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(snapshot{l: l})
}

type snapshot struct {
	l *Ledger
}

func (s snapshot) get(key []byte) (*string, error) {
	v, err := s.l.store.Get(key)
	if err != nil || v == nil {
		return nil, err
	}
	str := string(v)
	return &str, nil
}

func (s snapshot) Global(key string) (*string, error) {
	return s.get(globalKey(key))
}

func (s snapshot) Local(account sdk.Address, key string) (*string, error) {
	return s.get(localKey(account, key))
}

func (s snapshot) Balance(account sdk.Address) (uint64, error) {
	v, err := s.l.store.Get(balanceKey(account))
	if err != nil {
		return 0, err
	}
	return decodeU64(v), nil
}

func (s snapshot) AppAddress() (sdk.Address, bool) {
	if s.l.appID == 0 {
		return "", false
	}
	return sdk.AppAddress(s.l.appID), true
}

func (s snapshot) Round() uint64 { return s.l.round }

func (s snapshot) Timestamp() uint64 { return s.l.lastTS }
