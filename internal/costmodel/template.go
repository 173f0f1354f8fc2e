package costmodel

// Slot describes one entry a category's cost form starts with.
type Slot struct {
	Kind   Kind   `json:"cost_kind"`
	Unit   Unit   `json:"unit,omitempty"`
	Period Period `json:"period,omitempty"`
	// QuantityLabel is shown next to the quantity input; empty hides it.
	QuantityLabel string `json:"quantity_label,omitempty"`
}

// Template is the cost-form shape for one category. A template with no slots
// collects free-text notes only and shows Guidance instead of numeric fields.
type Template struct {
	Category Category `json:"category"`
	Slots    []Slot   `json:"slots"`
	Guidance string   `json:"guidance,omitempty"`
}

var (
	monthlyPlanSlot  = Slot{Kind: KindMonthlyPlan, Unit: UnitMonth, Period: PeriodMonthly}
	yearlyPlanSlot   = Slot{Kind: KindYearlyPlan, Unit: UnitYear, Period: PeriodYearly}
	serviceCallSlot  = Slot{Kind: KindServiceCall, Unit: UnitVisit}
	hourlySlot       = Slot{Kind: KindHourly, Unit: UnitHour}
	installationSlot = Slot{Kind: KindInstallation, Unit: UnitInstallation}
)

const quoteGuidance = "Pricing for this kind of work depends on the job. Describe what was done and what you paid in the notes."

// templates is the single category -> form shape table shared by every caller.
var templates = map[Category][]Slot{
	CategoryPoolService: {monthlyPlanSlot},
	CategoryLandscaping: {monthlyPlanSlot},
	CategoryPestControl: {monthlyPlanSlot},

	CategoryHVAC: {serviceCallSlot, yearlyPlanSlot},

	CategoryPlumbing:         {serviceCallSlot},
	CategoryElectrical:       {serviceCallSlot},
	CategoryPetGrooming:      {serviceCallSlot},
	CategoryHouseCleaning:    {serviceCallSlot},
	CategoryMobileTireRepair: {serviceCallSlot},
	CategoryApplianceRepair:  {serviceCallSlot},

	CategoryHandyman:          {hourlySlot},
	CategoryLandscapeLighting: {hourlySlot},

	CategoryPowerWashing:  {{Kind: KindServiceCall, Unit: UnitVisit, QuantityLabel: "visits per year"}},
	CategoryCarWashDetail: {{Kind: KindServiceCall, Unit: UnitVisit, QuantityLabel: "visits per year"}},

	CategoryWaterFiltration: {{Kind: KindOneTime, Unit: UnitInstallation}, yearlyPlanSlot},

	CategoryGenerator: {serviceCallSlot, installationSlot, yearlyPlanSlot},

	CategoryRoofing:           {},
	CategoryGeneralContractor: {},
}

// TemplateFor returns the form shape for c. Categories without an explicit
// row, including ones outside the known set, get a single monthly plan.
func TemplateFor(c Category) Template {
	slots, ok := templates[c]
	if !ok {
		slots = []Slot{monthlyPlanSlot}
	}
	t := Template{Category: c, Slots: make([]Slot, len(slots))}
	copy(t.Slots, slots)
	if len(slots) == 0 {
		t.Guidance = quoteGuidance
	}
	return t
}

// Entries returns fresh, empty entries for every slot in the template.
func (t Template) Entries() []Entry {
	entries := make([]Entry, 0, len(t.Slots))
	for _, s := range t.Slots {
		entries = append(entries, Entry{Kind: s.Kind, Unit: s.Unit, Period: s.Period})
	}
	return entries
}

// BuildDefaultCosts returns the empty cost entries for a category. It is
// deterministic: repeated calls return structurally equal slices that share
// no memory.
func BuildDefaultCosts(c Category) []Entry {
	return TemplateFor(c).Entries()
}
