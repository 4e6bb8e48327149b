package game

// BPEffect is a permanent bonus from a buzzword-shop purchase. Starting
// fields add together; multiplier fields compose multiplicatively (zero
// means "unset", treated as 1).
type BPEffect struct {
	StartingMoney              float64
	StartingClickPower         float64
	StartingAutoMoney          float64
	GlobalMoneyMultiplier      float64
	GlobalClickMultiplier      float64
	GlobalAutoMultiplier       float64
	ElectrolyteDrainReduction  float64
	GlitchMeterFillRate        float64
	TemporalFluxGainMultiplier float64
}

type BuzzwordUpgrade struct {
	ID          string
	Name        string
	Description string
	Cost        float64
	Icon        string
	Category    string
	Effect      BPEffect
}

// BuzzwordUpgrades is the prestige shop. Purchases survive ascension.
var BuzzwordUpgrades = []BuzzwordUpgrade{
	// Starting resources
	{
		ID: "bp_starting_capital", Name: "Starting Capital",
		Description: "Begin each ascension with $1,000",
		Cost:        50, Icon: "💵", Category: "starting",
		Effect: BPEffect{StartingMoney: 1000},
	},
	{
		ID: "bp_starting_capital_2", Name: "Venture Capital",
		Description: "Begin each ascension with $10,000",
		Cost:        150, Icon: "💰", Category: "starting",
		Effect: BPEffect{StartingMoney: 10000},
	},
	{
		ID: "bp_starting_clicks", Name: "Strong Opener",
		Description: "Start with +10 click power",
		Cost:        100, Icon: "👆", Category: "starting",
		Effect: BPEffect{StartingClickPower: 10},
	},
	{
		ID: "bp_starting_auto", Name: "Passive Income",
		Description: "Start with $50/sec auto money",
		Cost:        200, Icon: "💸", Category: "starting",
		Effect: BPEffect{StartingAutoMoney: 50},
	},

	// Global multipliers
	{
		ID: "bp_money_mult_1", Name: "Corporate Greed I",
		Description: "All money gains +10%",
		Cost:        100, Icon: "📈", Category: "multiplier",
		Effect: BPEffect{GlobalMoneyMultiplier: 1.1},
	},
	{
		ID: "bp_money_mult_2", Name: "Corporate Greed II",
		Description: "All money gains +25%",
		Cost:        300, Icon: "📈", Category: "multiplier",
		Effect: BPEffect{GlobalMoneyMultiplier: 1.25},
	},
	{
		ID: "bp_money_mult_3", Name: "Corporate Greed III",
		Description: "All money gains +50%",
		Cost:        500, Icon: "📈", Category: "multiplier",
		Effect: BPEffect{GlobalMoneyMultiplier: 1.5},
	},
	{
		ID: "bp_click_mult", Name: "Finger Strength Training",
		Description: "Click power +50%",
		Cost:        250, Icon: "💪", Category: "multiplier",
		Effect: BPEffect{GlobalClickMultiplier: 1.5},
	},
	{
		ID: "bp_auto_mult", Name: "Automation Expert",
		Description: "Auto money +50%",
		Cost:        250, Icon: "🤖", Category: "multiplier",
		Effect: BPEffect{GlobalAutoMultiplier: 1.5},
	},

	// Meta mechanics
	{
		ID: "bp_electrolyte_slow", Name: "Hydration Station",
		Description: "Electrolytes drain 50% slower",
		Cost:        150, Icon: "💧", Category: "meta",
		Effect: BPEffect{ElectrolyteDrainReduction: 0.5},
	},
	{
		ID: "bp_glitch_boost", Name: "Reality Hacker",
		Description: "Glitch meter fills 2x faster",
		Cost:        300, Icon: "⚡", Category: "meta",
		Effect: BPEffect{GlitchMeterFillRate: 2.0},
	},
	{
		ID: "bp_temporal_boost", Name: "Time Lord",
		Description: "Temporal Flux gains +100%",
		Cost:        400, Icon: "🌀", Category: "meta",
		Effect: BPEffect{TemporalFluxGainMultiplier: 2.0},
	},
}

// BuzzwordUpgradeByID returns the shop entry, or nil for an unknown id.
func BuzzwordUpgradeByID(id string) *BuzzwordUpgrade {
	for i := range BuzzwordUpgrades {
		if BuzzwordUpgrades[i].ID == id {
			return &BuzzwordUpgrades[i]
		}
	}
	return nil
}

// BPMultipliers is the aggregate of all owned buzzword-shop effects.
type BPMultipliers struct {
	StartingMoney              float64 `json:"starting_money"`
	StartingClickPower         float64 `json:"starting_click_power"`
	StartingAutoMoney          float64 `json:"starting_auto_money"`
	GlobalMoneyMultiplier      float64 `json:"global_money_multiplier"`
	GlobalClickMultiplier      float64 `json:"global_click_multiplier"`
	GlobalAutoMultiplier       float64 `json:"global_auto_multiplier"`
	ElectrolyteDrainMultiplier float64 `json:"electrolyte_drain_multiplier"`
	GlitchMeterFillRate        float64 `json:"glitch_meter_fill_rate"`
	TemporalFluxGainMultiplier float64 `json:"temporal_flux_gain_multiplier"`
}

// AggregateBPMultipliers folds the owned shop purchases into one bundle of
// starting resources and rate factors.
func AggregateBPMultipliers(s *State) BPMultipliers {
	agg := BPMultipliers{
		GlobalMoneyMultiplier:      1,
		GlobalClickMultiplier:      1,
		GlobalAutoMultiplier:       1,
		ElectrolyteDrainMultiplier: 1,
		GlitchMeterFillRate:        1,
		TemporalFluxGainMultiplier: 1,
	}
	for _, bu := range BuzzwordUpgrades {
		if !s.OwnsBP(bu.ID) {
			continue
		}
		e := bu.Effect
		agg.StartingMoney += e.StartingMoney
		agg.StartingClickPower += e.StartingClickPower
		agg.StartingAutoMoney += e.StartingAutoMoney
		if e.GlobalMoneyMultiplier != 0 {
			agg.GlobalMoneyMultiplier *= e.GlobalMoneyMultiplier
		}
		if e.GlobalClickMultiplier != 0 {
			agg.GlobalClickMultiplier *= e.GlobalClickMultiplier
		}
		if e.GlobalAutoMultiplier != 0 {
			agg.GlobalAutoMultiplier *= e.GlobalAutoMultiplier
		}
		agg.ElectrolyteDrainMultiplier *= 1 - e.ElectrolyteDrainReduction
		if e.GlitchMeterFillRate != 0 {
			agg.GlitchMeterFillRate *= e.GlitchMeterFillRate
		}
		if e.TemporalFluxGainMultiplier != 0 {
			agg.TemporalFluxGainMultiplier *= e.TemporalFluxGainMultiplier
		}
	}
	return agg
}
