// Package traffic turns session store changes into debounced analytics
// emissions: one traffic session log per quiet window, none at all while a
// staff screen is up.
package traffic

import (
	"time"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

// Snapshot is the traffic session log sent to collectors. It describes the
// visitor's position and accumulated choices at the end of a debounce
// window.
type Snapshot struct {
	SessionID    string                   `json:"sessionId"`
	Screen       screen.ID                `json:"screen"`
	SubRoute     string                   `json:"subRoute,omitempty"`
	Actions      []string                 `json:"actions"`
	CustomerName string                   `json:"customerName,omitempty"`
	Vehicle      *session.VehicleChoice   `json:"vehicle,omitempty"`
	TradeIn      *session.TradeInDetails  `json:"tradeIn,omitempty"`
	Payment      *session.PaymentEstimate `json:"payment,omitempty"`
	Data         session.CustomerData     `json:"data"`
	RecordedAt   time.Time                `json:"recordedAt"`
}

// snapshotOf builds a Snapshot from a store event. Event payloads are
// already copies, so the snapshot is safe to hold across turns.
func snapshotOf(ev session.Event) Snapshot {
	return Snapshot{
		SessionID:    ev.SessionID,
		Screen:       ev.State.Current,
		SubRoute:     ev.State.SubRoute,
		Actions:      ev.Actions,
		CustomerName: ev.Data.CustomerName,
		Vehicle:      ev.Data.Vehicle,
		TradeIn:      ev.Data.TradeIn,
		Payment:      ev.Data.Payment,
		Data:         ev.Data,
		RecordedAt:   time.Now(),
	}
}
