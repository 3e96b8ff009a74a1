package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnown(t *testing.T) {
	for _, id := range All() {
		assert.True(t, Known(id), "All() entry %s should be known", id)
	}
	assert.False(t, Known("vrShowroom"))
	assert.False(t, Known(""))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, TrafficLog.IsAdmin())
	assert.True(t, SalesDashboard.IsAdmin())
	assert.False(t, Welcome.IsAdmin())
	assert.False(t, Inventory.IsAdmin())
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "#inventory", Inventory.Fragment())
	assert.Equal(t, "#welcome", Welcome.Fragment())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry[string]()

	assert.True(t, r.Register(Inventory, "inventory-screen"))
	assert.True(t, r.Register(Welcome, "welcome-screen"))

	// Unknown identifiers are rejected outright.
	assert.False(t, r.Register("bogus", "nope"))

	unit, ok := r.Lookup(Inventory)
	assert.True(t, ok)
	assert.Equal(t, "inventory-screen", unit)

	_, ok = r.Lookup(Payment)
	assert.False(t, ok)

	assert.True(t, r.Has(Welcome))
	assert.False(t, r.Has("bogus"))

	// IDs come back in canonical screen order regardless of registration order.
	assert.Equal(t, []ID{Welcome, Inventory}, r.IDs())
}
