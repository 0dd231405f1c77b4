package engine

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/event"
	"github.com/osse101/IdleYard_Go/internal/ledger"
	"github.com/osse101/IdleYard_Go/internal/producer"
	"github.com/osse101/IdleYard_Go/internal/transport"
)

// vehicle returns the game's vehicle or ErrNoVehicle
func (m *mutation) vehicle() (*domain.Vehicle, error) {
	if m.game.Vehicle == nil || m.st.Vehicle == nil {
		return nil, domain.ErrNoVehicle
	}
	return m.st.Vehicle, nil
}

// applyLoadCargo moves stock onto the vehicle while it sits at the
// origin. Only resources the destination buys can be loaded.
func (s *service) applyLoadCargo(m *mutation, act Action) error {
	v, err := m.vehicle()
	if err != nil {
		return err
	}
	if act.Quantity <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, act.Quantity)
	}
	if _, priced := m.game.Vehicle.Prices[act.Resource]; !priced {
		return fmt.Errorf("%w: %s has no price at the destination", domain.ErrUnknownKind, act.Resource)
	}

	resolved := transport.Resolve(v, m.game.Vehicle, m.now)
	if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
		return domain.ErrVehicleInTransit
	}
	if resolved.Location != domain.VehicleAtOrigin {
		return domain.ErrWrongLocation
	}

	if v.CargoTotal()+act.Quantity > m.game.Vehicle.CargoCapacity {
		return fmt.Errorf("%w: %d of %d used", domain.ErrCargoCapacity, v.CargoTotal(), m.game.Vehicle.CargoCapacity)
	}

	if err := ledger.DebitStock(m.st, act.Resource, act.Quantity); err != nil {
		return err
	}
	if v.Cargo == nil {
		v.Cargo = make(map[string]int64)
	}
	v.Cargo[act.Resource] += act.Quantity
	return nil
}

// applySendVehicle dispatches the vehicle on one leg of its loop
func (s *service) applySendVehicle(m *mutation, act Action) error {
	v, err := m.vehicle()
	if err != nil {
		return err
	}

	dir := transport.Direction(act.Direction)
	if err := transport.Depart(v, m.game.Vehicle, dir, m.now); err != nil {
		return err
	}

	m.events = append(m.events, event.NewVehicleDispatchedEvent(m.accountID, domain.GameID(m.game.ID), act.Direction, v.CargoTotal()))
	return nil
}

// applySellCargo sells everything on the vehicle at destination prices
func (s *service) applySellCargo(m *mutation, act Action) error {
	v, err := m.vehicle()
	if err != nil {
		return err
	}

	resolved := transport.Resolve(v, m.game.Vehicle, m.now)
	if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
		return domain.ErrVehicleInTransit
	}
	if resolved.Location != domain.VehicleAtDestination {
		return domain.ErrWrongLocation
	}
	if v.CargoTotal() == 0 {
		return domain.ErrCargoEmpty
	}

	var total int64
	for resource, qty := range v.Cargo {
		total += m.game.Vehicle.Prices[resource] * qty
	}
	if err := ledger.CreditBalance(m.st, m.game.Vehicle.Currency, total); err != nil {
		return err
	}

	v.Cargo = make(map[string]int64)
	return nil
}

// applyReleaseCagedProducers unloads caged producers into free slots at
// the origin, in cage order. Producers that do not fit stay caged.
func (s *service) applyReleaseCagedProducers(m *mutation, act Action) error {
	v, err := m.vehicle()
	if err != nil {
		return err
	}

	resolved := transport.Resolve(v, m.game.Vehicle, m.now)
	if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
		return domain.ErrVehicleInTransit
	}
	if resolved.Location != domain.VehicleAtOrigin {
		return domain.ErrWrongLocation
	}
	if len(v.Cage) == 0 {
		return domain.ErrCageEmpty
	}

	free := m.st.FreeSlots()
	if len(free) == 0 {
		return domain.ErrNoFreeSlots
	}

	released := 0
	for _, slot := range free {
		if released >= len(v.Cage) {
			break
		}
		caged := v.Cage[released]
		rule, ok := m.game.Kind(caged.Kind)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownKind, caged.Kind)
		}
		p := producer.New(caged.Kind, rule, m.now)
		p.Level = caged.Level
		m.st.Producers[slot] = p
		released++
	}

	v.Cage = v.Cage[released:]
	if len(v.Cage) == 0 {
		v.Cage = nil
	}
	return nil
}
