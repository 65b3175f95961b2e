// Package admin holds the back-office screens: one manager per entity,
// each an independent {loading, error, data} state that fully refetches
// its list after every mutation. Mutations are admin-gated and rare, so
// the extra round trip is an acceptable price for never patching local
// state by hand.
package admin

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Modal is the single active modal of a screen. Never more than one.
type Modal int

const (
	ModalNone Modal = iota
	ModalCreate
	ModalEdit
)

// ErrModalOpen is returned when a second modal would overlap the first.
var ErrModalOpen = errors.New("another modal is already open")

// TokenSource supplies the bearer token for admin calls, normally the
// session store.
type TokenSource interface {
	Token() string
}

var validate = validator.New()
