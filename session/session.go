// Package session holds the per-user checkout state: the cart, the one-time
// order token and the selected subscription plan. The whole bag is owned by
// exactly one user and stored last-write-wins; nothing in here takes locks.
package session

import (
	"readira/models"
)

type Session struct {
	UserID       string                     `json:"userid"`
	Cart         map[string]models.CartLine `json:"cart,omitempty"`
	OrderToken   string                     `json:"order_token,omitempty"`
	SelectedPlan string                     `json:"selected_plan,omitempty"`

	dirty bool
}

func New(userID string) *Session {
	return &Session{
		UserID: userID,
		Cart:   make(map[string]models.CartLine),
	}
}

// Dirty reports whether the session has unsaved mutations.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) MarkDirty() { s.dirty = true }

func (s *Session) Line(materialID string) (models.CartLine, bool) {
	line, ok := s.Cart[materialID]
	return line, ok
}

func (s *Session) SetLine(line models.CartLine) {
	if s.Cart == nil {
		s.Cart = make(map[string]models.CartLine)
	}
	s.Cart[line.MaterialID] = line
	s.dirty = true
}

// RemoveLine is idempotent; removing an absent key leaves the session clean.
func (s *Session) RemoveLine(materialID string) {
	if _, ok := s.Cart[materialID]; !ok {
		return
	}
	delete(s.Cart, materialID)
	s.dirty = true
}

func (s *Session) CartEmpty() bool { return len(s.Cart) == 0 }

func (s *Session) SelectPlan(planID string) {
	if s.SelectedPlan == planID {
		return
	}
	s.SelectedPlan = planID
	s.dirty = true
}

func (s *Session) ClearPlan() {
	if s.SelectedPlan == "" {
		return
	}
	s.SelectedPlan = ""
	s.dirty = true
}

// ResetCheckout clears cart, token and plan in one step so a partial clear
// can never leave the session able to replay part of a committed checkout.
func (s *Session) ResetCheckout() {
	s.Cart = make(map[string]models.CartLine)
	s.OrderToken = ""
	s.SelectedPlan = ""
	s.dirty = true
}
