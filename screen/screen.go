// Package screen defines the closed set of kiosk screen identifiers and the
// registry that maps identifiers to renderable units.
package screen

// ID identifies one full-step screen in the kiosk journey.
type ID string

const (
	Welcome           ID = "welcome"
	Inventory         ID = "inventory"
	VehicleDetail     ID = "vehicleDetail"
	TradeIn           ID = "tradeIn"
	Payment           ID = "payment"
	Handoff           ID = "handoff"
	AIChat            ID = "aiChat"
	StockLookup       ID = "stockLookup"
	ModelBudget       ID = "modelBudget"
	GuidedQuiz        ID = "guidedQuiz"
	VehicleComparison ID = "vehicleComparison"

	// Staff-only screens. Exempt from idle reset and traffic logging.
	TrafficLog     ID = "trafficLog"
	SalesDashboard ID = "salesDashboard"
)

// Default is the screen the kiosk starts on and returns to after a reset.
const Default = Welcome

// all lists every known screen. Order matters only for menus.
var all = []ID{
	Welcome,
	Inventory,
	VehicleDetail,
	TradeIn,
	Payment,
	Handoff,
	AIChat,
	StockLookup,
	ModelBudget,
	GuidedQuiz,
	VehicleComparison,
	TrafficLog,
	SalesDashboard,
}

var known = func() map[ID]bool {
	m := make(map[ID]bool, len(all))
	for _, id := range all {
		m[id] = true
	}
	return m
}()

var admin = map[ID]bool{
	TrafficLog:     true,
	SalesDashboard: true,
}

// All returns every known screen identifier.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Known reports whether id is a registered screen identifier.
func Known(id ID) bool {
	return known[id]
}

// IsAdmin reports whether id is a staff-only screen.
func (id ID) IsAdmin() bool {
	return admin[id]
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// Fragment returns the location marker shown in the native history bar,
// e.g. "#inventory".
func (id ID) Fragment() string {
	return "#" + string(id)
}
