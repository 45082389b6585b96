package memory

import (
	"sort"

	"fleet/internal/domain"
)

// tables holds the raw record maps. All methods assume the caller
// already holds the appropriate store lock.
type tables struct {
	vehicles map[string]*domain.Vehicle
	drivers  map[string]*domain.Driver
	trips    map[string]*domain.Trip
}

func (t *tables) clone() *tables {
	c := &tables{
		vehicles: make(map[string]*domain.Vehicle, len(t.vehicles)),
		drivers:  make(map[string]*domain.Driver, len(t.drivers)),
		trips:    make(map[string]*domain.Trip, len(t.trips)),
	}
	for id, v := range t.vehicles {
		c.vehicles[id] = copyVehicle(v)
	}
	for id, d := range t.drivers {
		c.drivers[id] = copyDriver(d)
	}
	for id, tr := range t.trips {
		c.trips[id] = copyTrip(tr)
	}
	return c
}

// Copies are handed out on every read so callers can never mutate a
// stored record outside a transaction.

func copyVehicle(v *domain.Vehicle) *domain.Vehicle {
	c := *v
	c.Features = append([]string(nil), v.Features...)
	return &c
}

func copyDriver(d *domain.Driver) *domain.Driver {
	c := *d
	c.Languages = append([]string(nil), d.Languages...)
	c.Certifications = append([]string(nil), d.Certifications...)
	return &c
}

func copyTrip(t *domain.Trip) *domain.Trip {
	c := *t
	return &c
}

func sortedIDs[T any](m map[string]*T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
