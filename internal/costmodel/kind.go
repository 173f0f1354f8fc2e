// Package costmodel shapes, merges, edits and normalizes the cost entries a
// resident records against a vendor. Everything here is pure: no I/O, no
// clocks, no globals that change at runtime.
package costmodel

// Kind identifies the pricing shape of one cost entry.
type Kind string

const (
	KindMonthlyPlan  Kind = "monthly_plan"
	KindYearlyPlan   Kind = "yearly_plan"
	KindServiceCall  Kind = "service_call"
	KindHourly       Kind = "hourly"
	KindOneTime      Kind = "one_time"
	KindInstallation Kind = "installation"
)

// Unit is a descriptive label used for display and grouping only.
type Unit string

const (
	UnitMonth        Unit = "month"
	UnitYear         Unit = "year"
	UnitVisit        Unit = "visit"
	UnitHour         Unit = "hour"
	UnitInstallation Unit = "installation"
)

// Period is the recurrence of a cost, independent of its unit.
type Period string

const (
	PeriodNone    Period = ""
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodOneTime Period = "one_time"
)

var knownKinds = map[Kind]bool{
	KindMonthlyPlan:  true,
	KindYearlyPlan:   true,
	KindServiceCall:  true,
	KindHourly:       true,
	KindOneTime:      true,
	KindInstallation: true,
}

// Valid reports whether k is one of the known cost kinds.
func (k Kind) Valid() bool {
	return knownKinds[k]
}

// TakesQuantity reports whether entries of this kind carry a quantity
// (visits per period, hours, ...). One-off costs do not.
func (k Kind) TakesQuantity() bool {
	switch k {
	case KindOneTime, KindInstallation:
		return false
	default:
		return knownKinds[k]
	}
}

var knownUnits = map[Unit]bool{
	UnitMonth: true, UnitYear: true, UnitVisit: true, UnitHour: true, UnitInstallation: true,
}

// Valid reports whether u is a known unit. The empty unit is valid.
func (u Unit) Valid() bool {
	return u == "" || knownUnits[u]
}

// Valid reports whether p is a known period, including PeriodNone.
func (p Period) Valid() bool {
	switch p {
	case PeriodNone, PeriodMonthly, PeriodYearly, PeriodOneTime:
		return true
	}
	return false
}

// blankEntry is the shape an entry of kind k takes when no template offers it.
func blankEntry(k Kind) Entry {
	switch k {
	case KindMonthlyPlan:
		return Entry{Kind: k, Unit: UnitMonth, Period: PeriodMonthly}
	case KindYearlyPlan:
		return Entry{Kind: k, Unit: UnitYear, Period: PeriodYearly}
	case KindServiceCall:
		return Entry{Kind: k, Unit: UnitVisit}
	case KindHourly:
		return Entry{Kind: k, Unit: UnitHour}
	case KindOneTime, KindInstallation:
		return Entry{Kind: k, Unit: UnitInstallation}
	default:
		return Entry{Kind: k}
	}
}
