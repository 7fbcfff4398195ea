// Package signer models the signing capability handed to the external card
// renderer. The server never signs anything itself: a Signer only describes
// what the renderer may do and how unsigned interactions are reported.
package signer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Kind identifies a Signer variant.
type Kind string

// Signer variants.
const (
	KindNone      Kind = "none"
	KindFarcaster Kind = "farcaster"
)

// Status is the approval state of a signer's key.
type Status string

// Signer statuses.
const (
	StatusNone     Status = "none"
	StatusApproved Status = "approved"
)

// SpecificationFarcaster is the card protocol dialect both variants target.
const SpecificationFarcaster = "farcaster"

// State is the client-safe view of a signer. It never carries private key material.
type State struct {
	Kind      Kind   `json:"kind" doc:"Signer variant" enum:"none,farcaster"`
	HasSigner bool   `json:"hasSigner" doc:"Whether actions can be signed"`
	Status    Status `json:"status" doc:"Key approval status"`
	FID       int64  `json:"fid,omitempty" doc:"Account id the signer acts for"`
	PublicKey string `json:"publicKey,omitempty" doc:"Hex-encoded public key"`
}

// UnauthorizedAction describes a card button press that arrived without a usable signer.
type UnauthorizedAction struct {
	EntryID     string
	FrameURL    string
	ButtonIndex int
}

// Signer is the capability set the renderer is configured with.
type Signer interface {
	Kind() Kind
	CanSign() bool
	Specification() string
	State() State
	// OnUnauthorizedAction is called when the renderer cannot sign an interaction.
	OnUnauthorizedAction(ctx context.Context, action UnauthorizedAction) error
	Logout(ctx context.Context) error
}

// New returns the Signer variant named by kind.
func New(kind string, logger *slog.Logger) (Signer, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindNone, "":
		return NewNoop(logger), nil
	case KindFarcaster:
		return NewFarcaster(logger), nil
	default:
		return nil, fmt.Errorf("unknown signer kind %q", kind)
	}
}
