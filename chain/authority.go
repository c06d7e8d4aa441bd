package chain

import (
	"fmt"
	"strings"

	"eosiogo/codec"
	"eosiogo/crypto"
)

// PermissionLevel names an (actor, permission) pair — the unit an Action
// authorizes against and the unit a signing request placeholder resolves.
type PermissionLevel struct {
	Actor      Name `json:"actor"`
	Permission Name `json:"permission"`
}

func (p PermissionLevel) MarshalBinary(w *codec.Writer) error {
	if err := p.Actor.MarshalBinary(w); err != nil {
		return err
	}
	return p.Permission.MarshalBinary(w)
}

func (p *PermissionLevel) UnmarshalBinary(r *codec.Reader) error {
	if err := p.Actor.UnmarshalBinary(r); err != nil {
		return err
	}
	return p.Permission.UnmarshalBinary(r)
}

// String renders the conventional "actor@permission" form.
func (p PermissionLevel) String() string {
	return p.Actor.String() + "@" + p.Permission.String()
}

// ParsePermissionLevel accepts the "actor@permission" form.
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	parts := strings.SplitN(s, "@", 2)
	if len(parts) != 2 {
		return PermissionLevel{}, fmt.Errorf("chain: malformed permission level %q", s)
	}
	return PermissionLevel{Actor: NewName(parts[0]), Permission: NewName(parts[1])}, nil
}

// KeyWeight pairs a public key with its weight toward an Authority's
// threshold.
type KeyWeight struct {
	Key    crypto.PublicKey `json:"key"`
	Weight uint16           `json:"weight"`
}

func (k KeyWeight) MarshalBinary(w *codec.Writer) error {
	if err := k.Key.MarshalBinary(w); err != nil {
		return err
	}
	w.WriteUint16(k.Weight)
	return nil
}

func (k *KeyWeight) UnmarshalBinary(r *codec.Reader) error {
	if err := k.Key.UnmarshalBinary(r); err != nil {
		return err
	}
	weight, err := r.ReadUint16()
	if err != nil {
		return err
	}
	k.Weight = weight
	return nil
}

// PermissionLevelWeight pairs a delegated (actor, permission) with its
// weight toward an Authority's threshold.
type PermissionLevelWeight struct {
	Permission PermissionLevel `json:"permission"`
	Weight     uint16          `json:"weight"`
}

func (p PermissionLevelWeight) MarshalBinary(w *codec.Writer) error {
	if err := p.Permission.MarshalBinary(w); err != nil {
		return err
	}
	w.WriteUint16(p.Weight)
	return nil
}

func (p *PermissionLevelWeight) UnmarshalBinary(r *codec.Reader) error {
	if err := p.Permission.UnmarshalBinary(r); err != nil {
		return err
	}
	weight, err := r.ReadUint16()
	if err != nil {
		return err
	}
	p.Weight = weight
	return nil
}

// WaitWeight gives a delay (in seconds) weight toward an Authority's
// threshold — satisfied once that much time has passed since proposal.
type WaitWeight struct {
	WaitSec uint32 `json:"wait_sec"`
	Weight  uint16 `json:"weight"`
}

func (w WaitWeight) MarshalBinary(wr *codec.Writer) error {
	wr.WriteUint32(w.WaitSec)
	wr.WriteUint16(w.Weight)
	return nil
}

func (w *WaitWeight) UnmarshalBinary(r *codec.Reader) error {
	waitSec, err := r.ReadUint32()
	if err != nil {
		return err
	}
	weight, err := r.ReadUint16()
	if err != nil {
		return err
	}
	w.WaitSec, w.Weight = waitSec, weight
	return nil
}

// Authority is a weighted threshold of keys, delegated permissions and
// time delays — any combination summing to at least Threshold satisfies it.
type Authority struct {
	Threshold uint32                  `json:"threshold"`
	Keys      []KeyWeight             `json:"keys"`
	Accounts  []PermissionLevelWeight `json:"accounts"`
	Waits     []WaitWeight            `json:"waits"`
}

func (a Authority) MarshalBinary(w *codec.Writer) error {
	w.WriteUint32(a.Threshold)
	w.WriteVaruint64(uint64(len(a.Keys)))
	for _, k := range a.Keys {
		if err := k.MarshalBinary(w); err != nil {
			return err
		}
	}
	w.WriteVaruint64(uint64(len(a.Accounts)))
	for _, acc := range a.Accounts {
		if err := acc.MarshalBinary(w); err != nil {
			return err
		}
	}
	w.WriteVaruint64(uint64(len(a.Waits)))
	for _, wt := range a.Waits {
		if err := wt.MarshalBinary(w); err != nil {
			return err
		}
	}
	return nil
}

func (a *Authority) UnmarshalBinary(r *codec.Reader) error {
	threshold, err := r.ReadUint32()
	if err != nil {
		return err
	}
	a.Threshold = threshold

	keyCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Keys = make([]KeyWeight, keyCount)
	for i := range a.Keys {
		if err := a.Keys[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}

	accountCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Accounts = make([]PermissionLevelWeight, accountCount)
	for i := range a.Accounts {
		if err := a.Accounts[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}

	waitCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Waits = make([]WaitWeight, waitCount)
	for i := range a.Waits {
		if err := a.Waits[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}
	return nil
}
