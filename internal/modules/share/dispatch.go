package share

import (
	"context"
	"errors"
)

// ErrShareCancelled marks a user-cancelled native share. Cancellation is a
// no-op, never an error surfaced to the user and never a clipboard
// fallback trigger.
var ErrShareCancelled = errors.New("share: cancelled by user")

// Clipboard writes text to the client's clipboard.
type Clipboard interface {
	CopyText(ctx context.Context, text string) error
}

// ShareSheet is a native share surface. Share receives a nil file when the
// platform cannot attach images or generation failed.
type ShareSheet interface {
	SupportsImages() bool
	Share(ctx context.Context, title, text, url string, file *File) error
}

// Client describes the capabilities of the device requesting a share.
// A nil Sheet means the client has no native share surface.
type Client struct {
	Mobile    bool
	Clipboard Clipboard
	Sheet     ShareSheet
}

// Outcome reports how a share request was ultimately satisfied.
type Outcome string

const (
	OutcomeCopiedLink      Outcome = "copied_link"
	OutcomeSharedWithImage Outcome = "shared_with_image"
	OutcomeSharedTextOnly  Outcome = "shared_text_only"
	OutcomeCancelled       Outcome = "cancelled"
)

// Dispatch runs the sharing policy for card against the given client.
//
// Desktops always get a clipboard copy of the canonical URL and never pay
// for image generation. Mobiles with a native sheet get the richest share
// the platform supports, falling back to clipboard only on real sheet
// failures. Cancelling the sheet ends the interaction quietly.
func (p *Pipeline) Dispatch(ctx context.Context, card Card, client Client) (Outcome, error) {
	if !client.Mobile || client.Sheet == nil {
		return p.copyLink(ctx, card, client)
	}

	var file *File
	if client.Sheet.SupportsImages() {
		file = p.Generate(ctx, card)
	}

	err := client.Sheet.Share(ctx, card.Title, card.ShareText(), card.URL, file)
	switch {
	case err == nil && file != nil:
		return OutcomeSharedWithImage, nil
	case err == nil:
		return OutcomeSharedTextOnly, nil
	case errors.Is(err, ErrShareCancelled):
		return OutcomeCancelled, nil
	default:
		return p.copyLink(ctx, card, client)
	}
}

func (p *Pipeline) copyLink(ctx context.Context, card Card, client Client) (Outcome, error) {
	if client.Clipboard == nil {
		return OutcomeCopiedLink, errors.New("share: no clipboard available")
	}
	if err := client.Clipboard.CopyText(ctx, card.URL); err != nil {
		return OutcomeCopiedLink, err
	}
	return OutcomeCopiedLink, nil
}
