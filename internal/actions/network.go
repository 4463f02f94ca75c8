package actions

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/vanguard/internal/decay"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/validation"
)

// NewAlly is the input for adding an ally. The first contact is now.
type NewAlly struct {
	Name          string
	Role          string
	FrequencyDays int
	ContactMethod string
}

// Network lists allies with their health, most critical first.
func (s *Service) Network(userID string) ([]decay.Status, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	allies, err := s.store.GetAllies(userID)
	if err != nil {
		return nil, err
	}
	return decay.Network(allies, s.now()), nil
}

func (s *Service) AddAlly(userID string, in NewAlly) (models.Ally, error) {
	if err := requireUser(userID); err != nil {
		return models.Ally{}, err
	}
	now := s.now()
	a := models.Ally{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		Role:          strings.TrimSpace(in.Role),
		FrequencyDays: in.FrequencyDays,
		LastContact:   now,
		ContactMethod: strings.TrimSpace(in.ContactMethod),
		CreatedAt:     now,
	}
	if err := validation.Ally(a).Err(); err != nil {
		return models.Ally{}, err
	}
	if err := s.store.AddAlly(a); err != nil {
		return models.Ally{}, fmt.Errorf("adding ally: %w", err)
	}
	return a, nil
}

func (s *Service) DeleteAlly(userID, allyID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.store.DeleteAlly(userID, allyID)
}

// LogInteraction restores contact with an ally. It grants no XP.
func (s *Service) LogInteraction(userID, allyID string) (models.Ally, error) {
	if err := requireUser(userID); err != nil {
		return models.Ally{}, err
	}
	a, err := s.store.GetAlly(userID, allyID)
	if err != nil {
		return models.Ally{}, err
	}
	restored := decay.Restore(a, s.now())
	if err := s.store.TouchAlly(userID, allyID, restored.LastContact); err != nil {
		return models.Ally{}, err
	}
	return restored, nil
}

// CommsStatus evaluates the comms gate at call time.
func (s *Service) CommsStatus(userID string, override decay.SessionOverride) (decay.GateState, error) {
	if err := requireUser(userID); err != nil {
		return decay.GateState{}, err
	}
	allies, err := s.store.GetAllies(userID)
	if err != nil {
		return decay.GateState{}, err
	}
	return decay.Evaluate(allies, s.now(), override), nil
}
