package domain

import (
	"encoding/json"
	"time"
)

// GameID identifies one of the configured games
type GameID string

// Configured games
const (
	GameBirdFarm  GameID = "birdfarm"
	GameGarden    GameID = "garden"
	GameMine      GameID = "mine"
	GameChessCats GameID = "chesscats"
	GameAquarium  GameID = "aquarium"
)

// ProducerState is the persisted lifecycle state of a producer
type ProducerState string

// Producer lifecycle states. Cyclic producers move
// producing -> ready -> (resting ->) producing; single-maturation
// producers move growing -> grown and stay there until sold.
const (
	ProducerProducing ProducerState = "producing"
	ProducerReady     ProducerState = "ready"
	ProducerResting   ProducerState = "resting"
	ProducerGrowing   ProducerState = "growing"
	ProducerGrown     ProducerState = "grown"
)

// Producer is a unit that converts elapsed time into resource yield.
// Its derived state is always reproducible from (Kind, Level, State,
// StateEnteredAt, now); there are no hidden timers.
type Producer struct {
	Kind           string        `json:"kind"`
	Level          int           `json:"level"`
	Workers        int           `json:"workers,omitempty"`
	State          ProducerState `json:"state"`
	StateEnteredAt time.Time     `json:"state_entered_at"`
	Fed            int64         `json:"fed,omitempty"`
}

// VehicleLocation is the persisted location of the transport vehicle
type VehicleLocation string

// Vehicle locations
const (
	VehicleAtOrigin               VehicleLocation = "at_origin"
	VehicleTravelingToDestination VehicleLocation = "traveling_to_destination"
	VehicleAtDestination          VehicleLocation = "at_destination"
	VehicleTravelingToOrigin      VehicleLocation = "traveling_to_origin"
)

// CagedProducer is a purchased producer riding in the vehicle cage,
// waiting to be released into a slot at the origin
type CagedProducer struct {
	Kind  string `json:"kind"`
	Level int    `json:"level"`
}

// Vehicle cycles between the origin and the destination, carrying cargo
// and optionally a cage of producers
type Vehicle struct {
	Location   VehicleLocation  `json:"location"`
	DepartedAt time.Time        `json:"departed_at,omitempty"`
	Cargo      map[string]int64 `json:"cargo,omitempty"`
	Cage       []CagedProducer  `json:"cage,omitempty"`
}

// Quota tracks a consumption counter bounded per cooldown cycle.
// CooldownStartedAt is zero while the quota is active.
type Quota struct {
	Used              int64     `json:"used"`
	CooldownStartedAt time.Time `json:"cooldown_started_at,omitempty"`
}

// GameState is the per-account per-game aggregate persisted as a single
// JSONB record. It is the unit of isolation: one mutation in flight per
// account per game.
type GameState struct {
	Balances       map[string]int64 `json:"balances"`
	Stocks         map[string]int64 `json:"stocks"`
	Pending        map[string]int64 `json:"pending,omitempty"`
	Producers      []*Producer      `json:"producers"`
	Vehicle        *Vehicle         `json:"vehicle,omitempty"`
	FeedQuota      Quota            `json:"feed_quota"`
	RedeemQuota    Quota            `json:"redeem_quota"`
	RedeemedCodes  []string         `json:"redeemed_codes,omitempty"`
	LastFreeFoodAt time.Time        `json:"last_free_food_at,omitempty"`
	LastComputedAt time.Time        `json:"last_computed_at"`
}

// NewGameState creates an empty aggregate with the given slot count and
// starting balances
func NewGameState(slots int, balances map[string]int64, withVehicle bool, now time.Time) *GameState {
	st := &GameState{
		Balances:       make(map[string]int64, len(balances)),
		Stocks:         make(map[string]int64),
		Pending:        make(map[string]int64),
		Producers:      make([]*Producer, slots),
		LastComputedAt: now,
	}
	for k, v := range balances {
		st.Balances[k] = v
	}
	if withVehicle {
		st.Vehicle = &Vehicle{
			Location: VehicleAtOrigin,
			Cargo:    make(map[string]int64),
		}
	}
	return st
}

// Clone returns a deep copy of the aggregate. The engine mutates a copy
// so a rejected action leaves the loaded state untouched.
func (s *GameState) Clone() *GameState {
	raw, err := json.Marshal(s)
	if err != nil {
		// GameState contains only marshalable fields
		panic(err)
	}
	var out GameState
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

// CargoTotal returns the total units currently loaded on the vehicle
func (v *Vehicle) CargoTotal() int64 {
	var total int64
	for _, qty := range v.Cargo {
		total += qty
	}
	return total
}

// HasRedeemed reports whether the account already used the given code
func (s *GameState) HasRedeemed(code string) bool {
	for _, c := range s.RedeemedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// FreeSlots returns the indexes of empty producer slots in order
func (s *GameState) FreeSlots() []int {
	var free []int
	for i, p := range s.Producers {
		if p == nil {
			free = append(free, i)
		}
	}
	return free
}

// OwnedOfKind counts producers of the given kind across slots and cage
func (s *GameState) OwnedOfKind(kind string) int {
	count := 0
	for _, p := range s.Producers {
		if p != nil && p.Kind == kind {
			count++
		}
	}
	if s.Vehicle != nil {
		for _, c := range s.Vehicle.Cage {
			if c.Kind == kind {
				count++
			}
		}
	}
	return count
}
