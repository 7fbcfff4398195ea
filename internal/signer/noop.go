package signer

import (
	"context"
	"log/slog"
)

// Noop is a Signer that cannot sign. Button presses are reported and dropped.
type Noop struct {
	logger *slog.Logger
}

var _ Signer = (*Noop)(nil)

// NewNoop creates a Noop signer.
func NewNoop(logger *slog.Logger) *Noop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Noop{logger: logger}
}

// Kind implements Signer.
func (*Noop) Kind() Kind { return KindNone }

// CanSign implements Signer.
func (*Noop) CanSign() bool { return false }

// Specification implements Signer.
func (*Noop) Specification() string { return SpecificationFarcaster }

// State implements Signer.
func (*Noop) State() State {
	return State{Kind: KindNone, Status: StatusNone}
}

// OnUnauthorizedAction implements Signer.
func (n *Noop) OnUnauthorizedAction(ctx context.Context, action UnauthorizedAction) error {
	n.logger.InfoContext(ctx, "A frame button was pressed without a signer.",
		"entry_id", action.EntryID,
		"frame_url", action.FrameURL,
		"button_index", action.ButtonIndex,
	)
	return nil
}

// Logout implements Signer. There is no session to end.
func (*Noop) Logout(context.Context) error { return nil }
