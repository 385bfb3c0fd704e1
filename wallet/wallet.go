package wallet

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/crypto"
)

var ErrKeyNotFound = errors.New("private key not found")

type entry struct {
	account Account
	key     *crypto.PrivateKey
}

// Registry maps "{account}-{permission}" to a private key, with an optional
// fee payer that is added as first authorizer of a transaction. It is not
// safe for concurrent mutation.
type Registry struct {
	keys  map[string]entry
	payer *entry
}

func NewRegistry() *Registry {
	return &Registry{
		keys: make(map[string]entry),
	}
}

// Import adds or replaces the key for account@permission.
func (r *Registry) Import(account chain.AccountName, privateKey string, permission chain.PermissionName) error {
	return r.ImportAccount(NewAccount(account, privateKey, permission))
}

func (r *Registry) ImportAccount(a Account) error {
	if a.Permission == "" {
		a.Permission = chain.ACTIVE
	}
	key, err := a.validate()
	if err != nil {
		return err
	}
	r.keys[a.Index()] = entry{account: a, key: key}
	return nil
}

// ImportAccounts imports every valid account and reports all invalid ones.
func (r *Registry) ImportAccounts(accounts []Account) error {
	var merr *multierror.Error
	for _, a := range accounts {
		if err := r.ImportAccount(a); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

func (r *Registry) Remove(actor chain.AccountName, permission chain.PermissionName) bool {
	index := chain.NewPermissionLevel(actor, permission).Index()
	if _, ok := r.keys[index]; !ok {
		return false
	}
	delete(r.keys, index)
	return true
}

// Lookup returns the key for a permission level, looking at the payer last.
func (r *Registry) Lookup(level chain.PermissionLevel) (*crypto.PrivateKey, error) {
	index := level.Index()
	if e, ok := r.keys[index]; ok {
		return e.key, nil
	}
	if r.payer != nil && r.payer.account.Index() == index {
		return r.payer.key, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrKeyNotFound, index)
}

func (r *Registry) SetPayer(account chain.AccountName, privateKey string, permission chain.PermissionName) error {
	a := NewAccount(account, privateKey, permission)
	key, err := a.validate()
	if err != nil {
		return fmt.Errorf("payer: %w", err)
	}
	r.payer = &entry{account: a, key: key}
	return nil
}

func (r *Registry) RemovePayer() {
	r.payer = nil
}

// Payer returns the fee payer permission level, if one is set.
func (r *Registry) Payer() (chain.PermissionLevel, bool) {
	if r.payer == nil {
		return chain.PermissionLevel{}, false
	}
	return r.payer.account.PermissionLevel(), true
}

// Accounts lists the imported indexes.
func (r *Registry) Accounts() []string {
	out := make([]string, 0, len(r.keys))
	for index := range r.keys {
		out = append(out, index)
	}
	return out
}

// PublicKeys lists the public keys of imported accounts, payer included.
func (r *Registry) PublicKeys() []crypto.PublicKey {
	var pubKeys []crypto.PublicKey
	for _, e := range r.keys {
		pubKeys = append(pubKeys, e.key.PublicKey())
	}
	if r.payer != nil {
		pubKeys = append(pubKeys, r.payer.key.PublicKey())
	}
	return pubKeys
}
