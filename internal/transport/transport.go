// Package transport implements the vehicle logistics state machine: a
// vehicle cycles between the origin and the destination, and its
// location is derived lazily from the departure timestamp.
package transport

import (
	"time"

	"github.com/osse101/IdleYard_Go/internal/clock"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// Direction of a requested departure
type Direction string

// Valid directions for the send-vehicle action
const (
	ToDestination Direction = "to_destination"
	ToOrigin      Direction = "to_origin"
)

// Resolved is the derived view of a vehicle at a point in time
type Resolved struct {
	Location         domain.VehicleLocation
	SecondsRemaining int64
}

// Resolve derives the vehicle's current location. A traveling vehicle
// arrives once elapsed >= travelDuration; the boundary counts as
// arrived.
func Resolve(v *domain.Vehicle, rule *rules.VehicleRule, now time.Time) Resolved {
	travel := time.Duration(rule.TravelSeconds) * time.Second

	switch v.Location {
	case domain.VehicleTravelingToDestination:
		if remaining := clock.Remaining(v.DepartedAt, now, travel); remaining > 0 {
			return Resolved{Location: domain.VehicleTravelingToDestination, SecondsRemaining: remaining}
		}
		return Resolved{Location: domain.VehicleAtDestination}
	case domain.VehicleTravelingToOrigin:
		if remaining := clock.Remaining(v.DepartedAt, now, travel); remaining > 0 {
			return Resolved{Location: domain.VehicleTravelingToOrigin, SecondsRemaining: remaining}
		}
		return Resolved{Location: domain.VehicleAtOrigin}
	default:
		return Resolved{Location: v.Location}
	}
}

// Normalize rewrites the persisted location to the resolved one, so
// stored records match what a read derives
func Normalize(v *domain.Vehicle, rule *rules.VehicleRule, now time.Time) {
	resolved := Resolve(v, rule, now)
	if resolved.Location != v.Location {
		v.Location = resolved.Location
		v.DepartedAt = time.Time{}
	}
}

// Depart validates and applies a departure. It returns
// domain.ErrWrongLocation when the vehicle is not at the leg's start,
// and domain.ErrVehicleInTransit when it is still traveling.
func Depart(v *domain.Vehicle, rule *rules.VehicleRule, dir Direction, now time.Time) error {
	resolved := Resolve(v, rule, now)

	switch dir {
	case ToDestination:
		if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
			return domain.ErrVehicleInTransit
		}
		if resolved.Location != domain.VehicleAtOrigin {
			return domain.ErrWrongLocation
		}
		v.Location = domain.VehicleTravelingToDestination
	case ToOrigin:
		if resolved.Location == domain.VehicleTravelingToDestination || resolved.Location == domain.VehicleTravelingToOrigin {
			return domain.ErrVehicleInTransit
		}
		if resolved.Location != domain.VehicleAtDestination {
			return domain.ErrWrongLocation
		}
		v.Location = domain.VehicleTravelingToOrigin
	default:
		return domain.ErrUnknownAction
	}

	v.DepartedAt = now
	return nil
}
