package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ncruces/zenity"
)

// ErrPermissionDenied is returned by Start when the user declines the camera.
var ErrPermissionDenied = errors.New("camera permission denied")

// PermissionGate asks the user for camera access. Request returns nil on grant
// and ErrPermissionDenied on refusal.
type PermissionGate interface {
	Request(ctx context.Context) error
}

// GateFunc adapts a function to PermissionGate.
type GateFunc func(ctx context.Context) error

func (f GateFunc) Request(ctx context.Context) error { return f(ctx) }

// AllowGate grants access without asking.
type AllowGate struct{}

func (AllowGate) Request(context.Context) error { return nil }

// DialogGate shows a native start screen with zenity.
type DialogGate struct {
	Title string
	Text  string
}

// NewDialogGate returns the default start screen.
func NewDialogGate() DialogGate {
	return DialogGate{
		Title: "Glimmer",
		Text:  "Circle your index finger to spin the tree. Pinch to shrink it.\n\nGlimmer needs your camera to see your hand.",
	}
}

func (g DialogGate) Request(ctx context.Context) error {
	err := zenity.Question(g.Text,
		zenity.Title(g.Title),
		zenity.OKLabel("Start Camera"),
		zenity.CancelLabel("Not Now"),
		zenity.QuestionIcon,
		zenity.Context(ctx),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, zenity.ErrCanceled):
		return ErrPermissionDenied
	default:
		return fmt.Errorf("show start dialog: %w", err)
	}
}

// errorDialog is swapped in tests.
var errorDialog = zenity.Error

// ShowError reports a start failure in a native dialog. It blocks until the
// user dismisses it. A dialog that cannot be shown is logged.
func ShowError(err error) {
	if err == nil {
		return
	}
	if derr := errorDialog(err.Error(), zenity.Title("Glimmer"), zenity.ErrorIcon); derr != nil {
		log.Printf("Error dialog failed: %v", derr)
	}
}
