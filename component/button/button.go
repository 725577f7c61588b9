// Package button is the state behind a clickable button: it gates
// activations while the button is disabled or loading, leaves a ripple
// where the pointer hit, and treats Enter and Space like a click.
package button

import (
	"context"
	"strings"
	"time"

	"github.com/on-the-ground/viewstate/effects/keyboard"
	"github.com/on-the-ground/viewstate/effects/log"
	"github.com/on-the-ground/viewstate/effects/transient"
)

type Source int

const (
	SourcePointer Source = iota
	SourceKeyboard
)

// Activation describes one accepted click or key press.
type Activation struct {
	Source  Source
	Pointer transient.Point // zero for keyboard activations
	Ripple  string          // id of the ripple token, if one was added
}

type Props struct {
	Variant   Variant // default primary
	Size      Size    // default md
	Loading   bool
	Disabled  bool
	FullWidth bool
	// Ripple enables ripple marks on pointer activations.
	Ripple bool
	// RippleDuration is how long a ripple mark lives; default
	// transient.RippleDuration.
	RippleDuration time.Duration
	ClassName      string
	OnClick        func(Activation)
}

type Button struct {
	ctx     context.Context
	props   Props
	ripples *transient.Ripples
}

// New requires the host and clock handlers in ctx.
func New(ctx context.Context, props Props) *Button {
	if props.Variant == "" {
		props.Variant = VariantPrimary
	}
	if props.Size == "" {
		props.Size = SizeMD
	}
	if props.RippleDuration <= 0 {
		props.RippleDuration = transient.RippleDuration
	}
	return &Button{
		ctx:     ctx,
		props:   props,
		ripples: transient.NewRipplesWithDuration(ctx, props.RippleDuration),
	}
}

func (b *Button) Props() Props {
	return b.props
}

// Inactive reports whether activations are currently ignored.
func (b *Button) Inactive() bool {
	return b.props.Disabled || b.props.Loading
}

// ClassName returns the style classes for the current props.
func (b *Button) ClassName() string {
	cls := classes(b.props.Size, b.props.Variant, b.props.FullWidth, b.Inactive())
	if extra := strings.TrimSpace(b.props.ClassName); extra != "" {
		cls += " " + extra
	}
	return cls
}

// Click handles a pointer activation at pointer on surface.
// It reports whether the activation was accepted.
func (b *Button) Click(pointer transient.Point, surface transient.Rect) bool {
	if b.Inactive() {
		log.Effect(b.ctx, log.LogDebug, "click ignored on inactive button", nil)
		return false
	}
	act := Activation{Source: SourcePointer, Pointer: pointer}
	if b.props.Ripple {
		act.Ripple = b.ripples.Trigger(pointer, surface)
	}
	if b.props.OnClick != nil {
		b.props.OnClick(act)
	}
	return true
}

// KeyDown handles a key press. Enter and Space activate the button
// without a ripple.
func (b *Button) KeyDown(ev *keyboard.KeyEvent) bool {
	if b.Inactive() {
		return false
	}
	return keyboard.HandleKeyDown(ev, func() {
		if b.props.OnClick != nil {
			b.props.OnClick(Activation{Source: SourceKeyboard})
		}
	})
}

func (b *Button) Ripples() []transient.Token[transient.Geometry] {
	return b.ripples.Tokens()
}

// OnRipplesChange forwards ripple changes to fn, for re-rendering.
func (b *Button) OnRipplesChange(fn func([]transient.Token[transient.Geometry])) func() {
	return b.ripples.OnChange(fn)
}

// Close cancels pending ripple expiries.
func (b *Button) Close() {
	b.ripples.Close()
}
