package signer

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// stubFID is the account the placeholder Farcaster signer claims to act for.
const stubFID int64 = 1

// Farcaster is a placeholder Farcaster signer: approved for a fixed account
// with an all-zero key. It advertises a signing capability to the renderer but
// holds no real key material.
type Farcaster struct {
	fid       int64
	status    Status
	publicKey [32]byte
	logger    *slog.Logger
}

var _ Signer = (*Farcaster)(nil)

// NewFarcaster creates the placeholder Farcaster signer.
func NewFarcaster(logger *slog.Logger) *Farcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Farcaster{
		fid:    stubFID,
		status: StatusApproved,
		logger: logger,
	}
}

// Kind implements Signer.
func (*Farcaster) Kind() Kind { return KindFarcaster }

// CanSign implements Signer.
func (f *Farcaster) CanSign() bool { return f.status == StatusApproved }

// Specification implements Signer.
func (*Farcaster) Specification() string { return SpecificationFarcaster }

// State implements Signer.
func (f *Farcaster) State() State {
	return State{
		Kind:      KindFarcaster,
		HasSigner: f.CanSign(),
		Status:    f.status,
		FID:       f.fid,
		PublicKey: "0x" + hex.EncodeToString(f.publicKey[:]),
	}
}

// OnUnauthorizedAction implements Signer. An approved signer should never get
// here, so the press is logged as a warning.
func (f *Farcaster) OnUnauthorizedAction(ctx context.Context, action UnauthorizedAction) error {
	f.logger.WarnContext(ctx, "unsigned frame action with farcaster signer configured",
		"fid", f.fid,
		"entry_id", action.EntryID,
		"button_index", action.ButtonIndex,
	)
	return nil
}

// Logout implements Signer. The stub keeps no per-user session.
func (f *Farcaster) Logout(ctx context.Context) error {
	f.logger.DebugContext(ctx, "farcaster signer logout", "fid", f.fid)
	return nil
}
