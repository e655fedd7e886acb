package booking

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"zela/models"
)

const defaultCurrency = "AOA"

// Price evaluates the configured pricing strategy over the booking facts.
// It is a pure computation: deterministic, no side effects. A missing
// required fact yields an InvalidFactsError.
func Price(model models.PricingModel, cfg models.PricingConfig, facts models.BookingFacts) (*models.PricingResult, error) {
	res := &models.PricingResult{
		Model:    model,
		Currency: cfg.Currency,
	}
	if res.Currency == "" {
		res.Currency = defaultCurrency
	}

	switch model {
	case models.PricingFixed:
		res.BaseAmount = cfg.Price

	case models.PricingHourly:
		if facts.Hours == nil {
			return nil, NewInvalidFactsError(model, "hours")
		}
		res.BaseAmount = cfg.HourlyRate * *facts.Hours

	case models.PricingHourlyMinimum:
		if facts.Hours == nil {
			return nil, NewInvalidFactsError(model, "hours")
		}
		hours := math.Max(*facts.Hours, cfg.MinimumHours)
		rate := cfg.HourlyRate
		if len(cfg.TypologyRates) > 0 {
			if facts.Typology == "" {
				return nil, NewInvalidFactsError(model, "typology")
			}
			r, ok := cfg.TypologyRates[facts.Typology]
			switch {
			case ok:
				rate = r
			case cfg.HourlyRate > 0:
				// Unknown typology falls back to the flat rate.
			default:
				return nil, NewInvalidFactsError(model, "typology")
			}
		}
		res.BaseAmount = rate * hours

	case models.PricingPerUnit:
		if facts.UnitCount == nil {
			return nil, NewInvalidFactsError(model, "unitCount")
		}
		n := *facts.UnitCount
		discount := discountFor(cfg.VolumeDiscounts, n)
		perUnit := cfg.BasePrice * (1 - discount/100)
		res.BaseAmount = perUnit * float64(n)

	case models.PricingTypologyBased:
		if facts.Typology == "" {
			return nil, NewInvalidFactsError(model, "typology")
		}
		table := cfg.Rates
		if facts.SubVariant != "" {
			t, ok := cfg.RateTable[facts.SubVariant]
			if !ok {
				return nil, NewInvalidFactsError(model, "subVariant")
			}
			table = t
		} else if len(table) == 0 {
			table = cfg.RateTable["general"]
		}
		amount, ok := table[facts.Typology]
		if !ok {
			return nil, NewInvalidFactsError(model, "typology")
		}
		res.BaseAmount = amount

	case models.PricingPackage:
		if facts.PackageRef == "" {
			return nil, NewInvalidFactsError(model, "packageRef")
		}
		// Package bookings consume a credit instead of charging; the total
		// stays zero and the credit's nominal value is reported only.
		res.BaseAmount = 0
		res.TotalAmount = 0
		for _, opt := range cfg.Packages {
			if opt.ID == facts.PackageRef && opt.Sessions > 0 {
				res.CreditValue = opt.Price / float64(opt.Sessions)
				break
			}
		}
		return res, nil

	default:
		return nil, fmt.Errorf("unknown pricing model %q", model)
	}

	res.TotalAmount = applySurcharges(res, cfg, facts)
	if cfg.MinimumBookingAmount > 0 && res.TotalAmount < cfg.MinimumBookingAmount {
		res.TotalAmount = cfg.MinimumBookingAmount
	}
	return res, nil
}

// applySurcharges appends the configured surcharges in their fixed order:
// urgency, then weekend/holiday multiplier, then travel, then booking fee.
// Each is computed from the base amount unless the config marks surcharges
// as compounding.
func applySurcharges(res *models.PricingResult, cfg models.PricingConfig, facts models.BookingFacts) float64 {
	total := res.BaseAmount
	sc := cfg.Surcharges

	basis := func() float64 {
		if sc.Compound {
			return total
		}
		return res.BaseAmount
	}
	add := func(label string, amount float64) {
		if amount == 0 {
			return
		}
		res.Surcharges = append(res.Surcharges, models.SurchargeLine{Label: label, Amount: amount})
		total += amount
	}

	if facts.Urgent && sc.UrgencyPercent > 0 {
		add("urgency", basis()*sc.UrgencyPercent/100)
	}
	// Holiday wins over weekend; the two never stack.
	if facts.Holiday && sc.HolidayMultiplier > 1 {
		add("holiday", basis()*(sc.HolidayMultiplier-1))
	} else if facts.Weekend && sc.WeekendMultiplier > 1 {
		add("weekend", basis()*(sc.WeekendMultiplier-1))
	}
	if sc.TravelSurcharge > 0 {
		add("travel", sc.TravelSurcharge)
	}
	if cfg.BookingFee > 0 {
		add("booking-fee", cfg.BookingFee)
	}
	return total
}

// creditTier is one parsed volume-discount range.
type creditTier struct {
	lo, hi   int
	discount float64
}

// discountFor resolves the discount percentage for a unit count. Tiers are
// closed ranges keyed "1", "2-3", "6+"; they are evaluated by ascending
// lower bound and the first containing range wins. Unparsable keys are
// ignored rather than failing the quote.
func discountFor(tiers map[string]float64, units int) float64 {
	parsed := make([]creditTier, 0, len(tiers))
	for key, pct := range tiers {
		t, ok := parseTier(key)
		if !ok {
			continue
		}
		t.discount = pct
		parsed = append(parsed, t)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].lo < parsed[j].lo })
	for _, t := range parsed {
		if units >= t.lo && units <= t.hi {
			return t.discount
		}
	}
	return 0
}

func parseTier(key string) (creditTier, bool) {
	key = strings.TrimSpace(key)
	switch {
	case strings.HasSuffix(key, "+"):
		lo, err := strconv.Atoi(strings.TrimSuffix(key, "+"))
		if err != nil {
			return creditTier{}, false
		}
		return creditTier{lo: lo, hi: math.MaxInt32}, true
	case strings.Contains(key, "-"):
		parts := strings.SplitN(key, "-", 2)
		lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || hi < lo {
			return creditTier{}, false
		}
		return creditTier{lo: lo, hi: hi}, true
	default:
		n, err := strconv.Atoi(key)
		if err != nil {
			return creditTier{}, false
		}
		return creditTier{lo: n, hi: n}, true
	}
}
