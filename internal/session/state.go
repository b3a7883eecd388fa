// Package session resolves the per-session shop state at the HTTP boundary.
package session

import (
	"github.com/greenbean/storefront/internal/cart"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/orders"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// State everything the shop keeps for one visitor
type State struct {
	Cart   *cart.Cart
	Orders *orders.History

	flashes      []Flash
	flashesDirty bool
}

type statePayload struct {
	Cart    []domain.CartLineItem `json:"cart"`
	Orders  []domain.Order        `json:"orders"`
	Flashes []Flash               `json:"flashes,omitempty"`
}

// NewState empty cart and history
func NewState() *State {
	return &State{Cart: cart.New(nil), Orders: orders.NewHistory(nil)}
}

// AddFlash queues a message for the next page
func (s *State) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.flashesDirty = true
}

// Flashes returns and consumes the queued messages
func (s *State) Flashes() []Flash {
	out := s.flashes
	if len(out) > 0 {
		s.flashes = nil
		s.flashesDirty = true
	}
	return out
}

// Dirty reports whether anything must be written back
func (s *State) Dirty() bool {
	return s.flashesDirty || s.Cart.Dirty() || s.Orders.Dirty()
}

func encodeState(s *State) (string, error) {
	bs, err := json.Marshal(statePayload{
		Cart:    s.Cart.Items(),
		Orders:  s.Orders.All(),
		Flashes: s.flashes,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode session state")
	}
	return string(bs), nil
}

func decodeState(raw string) (*State, error) {
	if raw == "" {
		return NewState(), nil
	}
	var p statePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.Wrap(err, "decode session state")
	}
	return &State{
		Cart:    cart.New(p.Cart),
		Orders:  orders.NewHistory(p.Orders),
		flashes: p.Flashes,
	}, nil
}
