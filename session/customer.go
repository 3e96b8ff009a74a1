package session

// CustomerData is the shared record of facts gathered during one kiosk
// session. Every screen contributes the subset of fields it owns; nothing
// here is required. Fields survive navigation until ResetJourney, except the
// filter-only fields noted below, which are additionally cleared when a
// native back navigation crosses the session baseline.
type CustomerData struct {
	CustomerName string `json:"customerName,omitempty"`

	// Filter-only fields. These arrive via shortcut navigations (e.g. a
	// "browse SUVs" tile) and must not silently re-apply after the visitor
	// backs out past the start of the journey.
	BodyStyle   string `json:"bodyStyle,omitempty"`
	BudgetRange string `json:"budgetRange,omitempty"`

	SelectedModel string           `json:"selectedModel,omitempty"`
	Vehicle       *VehicleChoice   `json:"vehicle,omitempty"`
	TradeIn       *TradeInDetails  `json:"tradeIn,omitempty"`
	Payment       *PaymentEstimate `json:"payment,omitempty"`
	Quiz          *QuizAnswers     `json:"quiz,omitempty"`
	Conversation  []ChatTurn       `json:"conversation,omitempty"`
}

// VehicleChoice identifies the vehicle the visitor is currently interested in.
type VehicleChoice struct {
	Stock     string `json:"stock"`
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	Year      int    `json:"year,omitempty"`
	BodyStyle string `json:"bodyStyle,omitempty"`
	Price     int    `json:"price,omitempty"`
}

// TradeInDetails describes the visitor's current vehicle.
type TradeInDetails struct {
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	Year      int    `json:"year,omitempty"`
	Mileage   int    `json:"mileage,omitempty"`
	Condition string `json:"condition,omitempty"`
	Estimate  int    `json:"estimate,omitempty"`
}

// PaymentEstimate captures the payment calculator inputs and result.
type PaymentEstimate struct {
	VehiclePrice int `json:"vehiclePrice,omitempty"`
	DownPayment  int `json:"downPayment,omitempty"`
	TermMonths   int `json:"termMonths,omitempty"`
	APRBasis     int `json:"aprBasis,omitempty"` // basis points
	Monthly      int `json:"monthly,omitempty"`
}

// QuizAnswers holds the guided-quiz selections.
type QuizAnswers struct {
	Priority   string `json:"priority,omitempty"`
	Passengers int    `json:"passengers,omitempty"`
	Terrain    string `json:"terrain,omitempty"`
}

// ChatTurn is one exchange in the assistant conversation log.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Update is a partial CustomerData. Nil or zero fields leave the current
// value untouched; Conversation entries append rather than replace.
type Update struct {
	CustomerName  string
	BodyStyle     string
	BudgetRange   string
	SelectedModel string
	Vehicle       *VehicleChoice
	TradeIn       *TradeInDetails
	Payment       *PaymentEstimate
	Quiz          *QuizAnswers
	Conversation  []ChatTurn
}

// IsZero reports whether the update carries nothing.
func (u *Update) IsZero() bool {
	if u == nil {
		return true
	}
	return u.CustomerName == "" && u.BodyStyle == "" && u.BudgetRange == "" &&
		u.SelectedModel == "" && u.Vehicle == nil && u.TradeIn == nil &&
		u.Payment == nil && u.Quiz == nil && len(u.Conversation) == 0
}

// apply shallow-merges the update into the record. Untouched fields are
// never replaced.
func (d *CustomerData) apply(u *Update) {
	if u == nil {
		return
	}
	if u.CustomerName != "" {
		d.CustomerName = u.CustomerName
	}
	if u.BodyStyle != "" {
		d.BodyStyle = u.BodyStyle
	}
	if u.BudgetRange != "" {
		d.BudgetRange = u.BudgetRange
	}
	if u.SelectedModel != "" {
		d.SelectedModel = u.SelectedModel
	}
	if u.Vehicle != nil {
		v := *u.Vehicle
		d.Vehicle = &v
	}
	if u.TradeIn != nil {
		v := *u.TradeIn
		d.TradeIn = &v
	}
	if u.Payment != nil {
		v := *u.Payment
		d.Payment = &v
	}
	if u.Quiz != nil {
		v := *u.Quiz
		d.Quiz = &v
	}
	d.Conversation = append(d.Conversation, u.Conversation...)
}

// clearFilters drops the filter-only fields. Called when a back navigation
// crosses the session baseline.
func (d *CustomerData) clearFilters() {
	d.BodyStyle = ""
	d.BudgetRange = ""
}

// clone returns a deep copy so observers can hold a snapshot without racing
// later mutation.
func (d CustomerData) clone() CustomerData {
	out := d
	if d.Vehicle != nil {
		v := *d.Vehicle
		out.Vehicle = &v
	}
	if d.TradeIn != nil {
		v := *d.TradeIn
		out.TradeIn = &v
	}
	if d.Payment != nil {
		v := *d.Payment
		out.Payment = &v
	}
	if d.Quiz != nil {
		v := *d.Quiz
		out.Quiz = &v
	}
	if d.Conversation != nil {
		out.Conversation = append([]ChatTurn(nil), d.Conversation...)
	}
	return out
}
