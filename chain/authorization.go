package chain

import "fmt"

type PermissionLevel struct {
	Actor      AccountName    `json:"actor"`
	Permission PermissionName `json:"permission"`
}

func NewPermissionLevel(actor AccountName, permission PermissionName) PermissionLevel {
	if permission == "" {
		permission = ACTIVE
	}
	return PermissionLevel{Actor: actor, Permission: permission}
}

// Index is the "{actor}-{permission}" key used to find signing keys.
func (p PermissionLevel) Index() string {
	return fmt.Sprintf("%s-%s", p.Actor, p.Permission)
}

func (p PermissionLevel) Pack(e *Encoder) error {
	if err := e.WriteName(Name(p.Actor)); err != nil {
		return fmt.Errorf("actor: %w", err)
	}
	if err := e.WriteName(Name(p.Permission)); err != nil {
		return fmt.Errorf("permission: %w", err)
	}
	return nil
}

func (p *PermissionLevel) Unpack(d *Decoder) error {
	actor, err := d.ReadName()
	if err != nil {
		return fmt.Errorf("actor: %w", err)
	}
	permission, err := d.ReadName()
	if err != nil {
		return fmt.Errorf("permission: %w", err)
	}
	p.Actor = AccountName(actor)
	p.Permission = PermissionName(permission)
	return nil
}
