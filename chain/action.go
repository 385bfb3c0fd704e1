package chain

import (
	"encoding/json"
	"fmt"
)

type Action struct {
	Account       AccountName            `json:"account"`
	Name          ActionName             `json:"name"`
	Authorization []PermissionLevel      `json:"authorization"`
	Data          map[string]interface{} `json:"data,omitempty"`
	BinArgs       HexBytes               `json:"hex_data,omitempty"`
}

func NewAction(account AccountName, name ActionName, data map[string]interface{}, authorization ...PermissionLevel) *Action {
	return &Action{
		Account:       account,
		Name:          name,
		Authorization: authorization,
		Data:          data,
	}
}

// Link sets the binary action arguments returned by abi_json_to_bin.
func (a *Action) Link(binargs []byte) {
	if binargs == nil {
		binargs = []byte{}
	}
	a.BinArgs = binargs
}

func (a *Action) IsLinked() bool {
	return a.BinArgs != nil
}

func (a *Action) Pack(e *Encoder) error {
	if a.BinArgs == nil {
		return ErrMissingBinArgs
	}
	if err := e.WriteName(Name(a.Account)); err != nil {
		return fmt.Errorf("account: %w", err)
	}
	if err := e.WriteName(Name(a.Name)); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	err := PackArray(e, a.Authorization, func(e *Encoder, p PermissionLevel) error {
		return p.Pack(e)
	})
	if err != nil {
		return fmt.Errorf("authorization: %w", err)
	}
	return e.WriteBytes(a.BinArgs)
}

func (a *Action) Unpack(d *Decoder) error {
	account, err := d.ReadName()
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	name, err := d.ReadName()
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	auths, err := UnpackArray(d, func(d *Decoder) (p PermissionLevel, err error) {
		err = p.Unpack(d)
		return
	})
	if err != nil {
		return fmt.Errorf("authorization: %w", err)
	}
	binargs, err := d.ReadBytes()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	a.Account = AccountName(account)
	a.Name = ActionName(name)
	a.Authorization = auths
	a.BinArgs = append(HexBytes{}, binargs...)
	return nil
}

func (a *Action) String() string {
	out, _ := json.Marshal(a)
	return string(out)
}
