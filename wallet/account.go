package wallet

import (
	"fmt"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/crypto"
)

// Account binds a private key to an account permission. It is only used to
// pick signing keys and never goes on the wire.
type Account struct {
	Account    chain.AccountName    `json:"account" mapstructure:"account" validate:"required,eosname"`
	PrivateKey string               `json:"private_key" mapstructure:"private_key" validate:"required"`
	Permission chain.PermissionName `json:"permission" mapstructure:"permission" validate:"omitempty,eosname"`
}

func NewAccount(account chain.AccountName, privateKey string, permission chain.PermissionName) Account {
	if permission == "" {
		permission = chain.ACTIVE
	}
	return Account{Account: account, PrivateKey: privateKey, Permission: permission}
}

// Index is "{account}-{permission}".
func (a Account) Index() string {
	return a.PermissionLevel().Index()
}

func (a Account) PermissionLevel() chain.PermissionLevel {
	return chain.NewPermissionLevel(a.Account, a.Permission)
}

func (a Account) validate() (*crypto.PrivateKey, error) {
	if !chain.IsValidName(string(a.Account)) {
		return nil, fmt.Errorf("account %q: %w", a.Account, chain.ErrInvalidName)
	}
	if !chain.IsValidName(string(a.Permission)) {
		return nil, fmt.Errorf("permission %q: %w", a.Permission, chain.ErrInvalidName)
	}
	key, err := crypto.NewPrivateKey(a.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Index(), err)
	}
	return key, nil
}
