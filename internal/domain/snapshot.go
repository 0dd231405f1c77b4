package domain

import "time"

// ProducerView is the resolved view of one producer slot
type ProducerView struct {
	Slot             int           `json:"slot"`
	Kind             string        `json:"kind"`
	Level            int           `json:"level"`
	Workers          int           `json:"workers,omitempty"`
	State            ProducerState `json:"state"`
	SecondsRemaining int64         `json:"seconds_remaining"`
	Collectible      int64         `json:"collectible"`
}

// VehicleView is the resolved view of the transport vehicle
type VehicleView struct {
	Location         VehicleLocation  `json:"location"`
	SecondsRemaining int64            `json:"seconds_remaining"`
	Cargo            map[string]int64 `json:"cargo"`
	CargoCapacity    int64            `json:"cargo_capacity"`
	Cage             []CagedProducer  `json:"cage,omitempty"`
	CageCapacity     int              `json:"cage_capacity,omitempty"`
}

// QuotaView is the resolved view of a session quota
type QuotaView struct {
	Used              int64 `json:"used"`
	Limit             int64 `json:"limit"`
	Remaining         int64 `json:"remaining"`
	CooldownRemaining int64 `json:"cooldown_remaining"`
}

// Snapshot is the authoritative post-resolution view of one game for one
// account. Every status read and every applied action returns one.
type Snapshot struct {
	AccountID   string           `json:"account_id"`
	GameID      GameID           `json:"game_id"`
	Balances    map[string]int64 `json:"balances"`
	Stocks      map[string]int64 `json:"stocks"`
	Pending     map[string]int64 `json:"pending,omitempty"`
	Producers   []ProducerView   `json:"producers"`
	Vehicle     *VehicleView     `json:"vehicle,omitempty"`
	FeedQuota   *QuotaView       `json:"feed_quota,omitempty"`
	RedeemQuota *QuotaView       `json:"redeem_quota,omitempty"`
	ComputedAt  time.Time        `json:"computed_at"`
}
