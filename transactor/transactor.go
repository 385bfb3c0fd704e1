package transactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/network"
	"github.com/encoderlee/eosapi/wallet"
)

var ErrNoActions = errors.New("transaction has no actions")

// TransactionRequest is the unsigned, unserialized form of a transaction as
// a user writes it: actions with JSON data.
type TransactionRequest struct {
	Actions []*chain.Action `json:"actions"`
}

// Transactor turns transaction requests into signed transactions and pushes
// them to a node. It keeps no state between calls besides its keys.
type Transactor struct {
	log     zerolog.Logger
	cfg     Config
	read    ChainReader
	resolve Resolver
	submit  Submitter
	keys    Keys
}

func New(log zerolog.Logger, read ChainReader, resolve Resolver, submit Submitter, keys Keys, options ...Option) *Transactor {
	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	t := Transactor{
		log:     log.With().Str("component", "transactor").Logger(),
		cfg:     cfg,
		read:    read,
		resolve: resolve,
		submit:  submit,
		keys:    keys,
	}

	return &t
}

// MakeTransaction builds, links and signs a transaction. The request is
// not modified.
func (t *Transactor) MakeTransaction(ctx context.Context, req TransactionRequest) (*chain.Transaction, error) {

	if len(req.Actions) == 0 {
		return nil, ErrNoActions
	}

	// Copy the actions so the payer authorization and binargs do not leak
	// into the caller's request.
	actions := make([]*chain.Action, 0, len(req.Actions))
	for _, action := range req.Actions {
		if action == nil {
			return nil, fmt.Errorf("action [%d] is nil", len(actions))
		}
		auths := make([]chain.PermissionLevel, len(action.Authorization))
		copy(auths, action.Authorization)
		actions = append(actions, &chain.Action{
			Account:       action.Account,
			Name:          action.Name,
			Authorization: auths,
			Data:          action.Data,
			BinArgs:       action.BinArgs,
		})
	}

	// The payer goes first on the first action so it is billed for CPU/NET.
	payer, ok := t.keys.Payer()
	if ok {
		actions[0].Authorization = append([]chain.PermissionLevel{payer}, actions[0].Authorization...)
	}

	// Collect the distinct actor permissions in the order they appear.
	var levels []chain.PermissionLevel
	seen := make(map[string]struct{})
	for _, action := range actions {
		for _, level := range action.Authorization {
			if _, ok := seen[level.Index()]; ok {
				continue
			}
			seen[level.Index()] = struct{}{}
			levels = append(levels, level)
		}
	}

	tx := chain.NewTransaction(actions...)
	tx.ExpirationDelaySec = t.cfg.ExpirationDelaySec
	tx.Clock = t.cfg.Clock

	// Each goroutine only writes to its own action.
	group, gctx := errgroup.WithContext(ctx)
	for i, action := range actions {
		i, action := i, action
		group.Go(func() error {
			binargs, err := t.resolve.AbiJSONToBin(gctx, action.Account, action.Name, action.Data)
			if err != nil {
				return fmt.Errorf("could not serialize action [%d] %s::%s: %w", i, action.Account, action.Name, err)
			}
			action.Link(binargs)
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return nil, err
	}

	info, err := t.read.GetInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get chain info: %w", err)
	}
	err = tx.Link(info.LastIrreversibleBlockID, info.ChainID)
	if err != nil {
		return nil, fmt.Errorf("could not link transaction: %w", err)
	}

	t.log.Debug().
		Uint16("ref_block_num", tx.RefBlockNum).
		Uint32("ref_block_prefix", tx.RefBlockPrefix).
		Int("actions", len(actions)).
		Msg("transaction linked")

	// One signature per distinct key, unknown permissions are left for
	// extra signatures.
	signed := make(map[string]struct{})
	for _, level := range levels {
		key, err := t.keys.Lookup(level)
		if errors.Is(err, wallet.ErrKeyNotFound) {
			t.log.Debug().Str("permission", level.Index()).Msg("no key for permission, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not look up key for %s: %w", level.Index(), err)
		}
		if _, ok := signed[key.String()]; ok {
			continue
		}
		err = tx.Sign(key)
		if err != nil {
			return nil, fmt.Errorf("could not sign transaction for %s: %w", level.Index(), err)
		}
		signed[key.String()] = struct{}{}
	}

	return tx, nil
}

// PushTransaction adds the extra signatures that are not present yet and
// submits the transaction.
func (t *Transactor) PushTransaction(ctx context.Context, tx *chain.Transaction, extraSignatures ...string) (*network.PushTransactionResponse, error) {

	for _, sig := range extraSignatures {
		tx.AddSignature(sig)
	}

	packed, err := tx.PackedTransaction(t.cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("could not pack transaction: %w", err)
	}

	res, err := t.submit.PushTransaction(ctx, packed)
	if err != nil {
		return nil, fmt.Errorf("could not submit transaction: %w", err)
	}

	return res, nil
}

// Push makes a transaction from the request and pushes it.
func (t *Transactor) Push(ctx context.Context, req TransactionRequest, extraSignatures ...string) (*network.PushTransactionResponse, error) {
	tx, err := t.MakeTransaction(ctx, req)
	if err != nil {
		return nil, err
	}
	return t.PushTransaction(ctx, tx, extraSignatures...)
}
