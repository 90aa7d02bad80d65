package gasplan

// ATA returns the ambient pressure in atmospheres for a depth in meters:
// one at the surface plus one per ten meters.
func ATA(depth float64) float64 {
	return depth/10 + 1
}

// Compute derives the air budget for a dive. It has no failure mode; callers
// normalize raw input first.
func Compute(p DiveParameters) AirBudgetReport {
	totalLiters := p.TankSize * p.StartPressure
	ata := ATA(p.MaxDepth)
	consumptionAtDepth := p.SACRate * ata
	neededLiters := consumptionAtDepth * p.BottomTime
	reserveLiters := totalLiters / 3
	warning := neededLiters > totalLiters*(2.0/3.0)

	report := AirBudgetReport{
		Parameters:         p,
		TotalLiters:        totalLiters,
		ATA:                ata,
		ConsumptionAtDepth: consumptionAtDepth,
		NeededLiters:       neededLiters,
		ReserveLiters:      reserveLiters,
		Warning:            warning,
		Display: Display{
			Needed:  FormatLiters(neededLiters) + " L",
			Reserve: FormatLiters(reserveLiters) + " L",
		},
	}
	if warning {
		report.Display.Warning = WarningText
	}
	return report
}

// Plan normalizes raw form input and computes the report.
func Plan(raw RawParameters) AirBudgetReport {
	return Compute(Normalize(raw))
}
