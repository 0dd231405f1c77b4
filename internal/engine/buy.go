package engine

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/ledger"
	"github.com/osse101/IdleYard_Go/internal/producer"
	"github.com/osse101/IdleYard_Go/internal/transport"
)

// applyBuyProducer purchases one producer of the requested kind. The
// price escalates with every unit already owned, caged units included.
//
// Vehicle games gate purchases on being at the destination; games with a
// cage load the purchase into it for the trip home. The bootstrap rule
// lets a brand-new account make its very first purchase without a trip,
// so it is never stuck with no producers and no way to travel.
func (s *service) applyBuyProducer(m *mutation, act Action) error {
	rule, ok := m.game.Kind(act.ProducerKind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, act.ProducerKind)
	}

	owned := m.st.OwnedOfKind(act.ProducerKind)
	cost := rule.PurchaseCost(owned)

	veh := m.game.Vehicle
	gated := veh != nil && (veh.GatePurchases || veh.CageCapacity > 0)
	bootstrap := gated && veh.BootstrapFirstBuy && ownedTotal(m.st) == 0

	if gated && !bootstrap {
		resolved := transport.Resolve(m.st.Vehicle, veh, m.now)
		if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
			return domain.ErrVehicleInTransit
		}
		if resolved.Location != domain.VehicleAtDestination {
			return domain.ErrWrongLocation
		}
	}

	intoCage := gated && !bootstrap && veh.CageCapacity > 0
	if intoCage {
		if len(m.st.Vehicle.Cage) >= veh.CageCapacity {
			return domain.ErrCageCapacity
		}
	}

	var slot int
	if !intoCage {
		var err error
		slot, err = m.placementSlot(act.Slot)
		if err != nil {
			return err
		}
	}

	if err := ledger.DebitBalance(m.st, rule.Currency, cost); err != nil {
		return err
	}

	if intoCage {
		m.st.Vehicle.Cage = append(m.st.Vehicle.Cage, domain.CagedProducer{Kind: act.ProducerKind, Level: 1})
		return nil
	}

	m.st.Producers[slot] = producer.New(act.ProducerKind, rule, m.now)
	return nil
}

// placementSlot picks the slot a new producer lands in. No requested
// slot means the first gap; contiguous games reject any requested slot
// other than the first gap.
func (m *mutation) placementSlot(requested int) (int, error) {
	free := m.st.FreeSlots()
	if len(free) == 0 {
		return 0, domain.ErrNoFreeSlots
	}

	if requested < 0 {
		return free[0], nil
	}

	if requested >= len(m.st.Producers) {
		return 0, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, requested)
	}
	if m.st.Producers[requested] != nil {
		return 0, fmt.Errorf("%w: %d", domain.ErrSlotOccupied, requested)
	}
	if m.game.Contiguous && requested != free[0] {
		return 0, fmt.Errorf("%w: next free slot is %d", domain.ErrSlotOrder, free[0])
	}
	return requested, nil
}

// ownedTotal counts every producer the account owns, caged included
func ownedTotal(st *domain.GameState) int {
	count := 0
	for _, p := range st.Producers {
		if p != nil {
			count++
		}
	}
	if st.Vehicle != nil {
		count += len(st.Vehicle.Cage)
	}
	return count
}

// applyUpgrade raises a producer's level. The cycle in progress keeps
// its entry timestamp; upgrading never resets a timer.
func (s *service) applyUpgrade(m *mutation, act Action) error {
	p, err := m.producerAt(act.Slot)
	if err != nil {
		return err
	}
	rule, ok := m.game.Kind(p.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, p.Kind)
	}

	if p.Level >= rule.MaxLevel {
		return domain.ErrMaxLevel
	}

	if err := ledger.DebitBalance(m.st, rule.Currency, rule.UpgradeCostAt(p.Level)); err != nil {
		return err
	}

	p.Level++
	return nil
}

// applyHireWorker assigns one more worker to a producer
func (s *service) applyHireWorker(m *mutation, act Action) error {
	p, err := m.producerAt(act.Slot)
	if err != nil {
		return err
	}
	rule, ok := m.game.Kind(p.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, p.Kind)
	}

	if rule.MaxWorkers == 0 || p.Workers >= rule.MaxWorkers {
		return domain.ErrWorkersFull
	}

	if err := ledger.DebitBalance(m.st, rule.Currency, rule.WorkerCost); err != nil {
		return err
	}

	p.Workers++
	return nil
}

// applySellProducer removes a producer and credits its sale value.
// Single-maturation producers must be fully grown; their value scales
// with how much they were fed.
func (s *service) applySellProducer(m *mutation, act Action) error {
	p, err := m.producerAt(act.Slot)
	if err != nil {
		return err
	}
	rule, ok := m.game.Kind(p.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, p.Kind)
	}

	value := rule.SellValue
	if rule.SingleMaturation() {
		resolved := producer.Resolve(p, rule, m.now)
		if resolved.State != domain.ProducerGrown {
			return domain.ErrNotGrown
		}
		value = fedSellValue(rule, p.Fed)
	}

	if err := ledger.CreditBalance(m.st, rule.Currency, value); err != nil {
		return err
	}

	m.st.Producers[act.Slot] = nil
	return nil
}
