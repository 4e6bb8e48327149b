package game

import "time"

// AscensionTier describes one reality tier. Cost is the money threshold for
// ascending INTO this tier; GlitchChance gates glitch triggers while in it.
type AscensionTier struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Cost           float64  `json:"cost"`
	BuzzwordReward float64  `json:"buzzword_reward"`
	Unlocks        []string `json:"unlocks,omitempty"`
	VisualEffect   string   `json:"visual_effect"`
	GlitchChance   float64  `json:"glitch_chance"`
}

var AscensionTiers = []AscensionTier{
	{
		ID: 0, Name: "Corporatism",
		Description:  "The boring reality. Everything makes sense.",
		VisualEffect: "normal",
	},
	{
		ID: 1, Name: "Late-Stage Capitalism",
		Description:    "Money grows on trees. Logic is optional.",
		Cost:           100_000_000, BuzzwordReward: 100,
		Unlocks:      []string{"synergy_system", "glitch_farming"},
		VisualEffect: "reality-1", GlitchChance: 0.1,
	},
	{
		ID: 2, Name: "Post-Scarcity",
		Description:    "Infinite growth! Numbers lose meaning!",
		Cost:           1_000_000_000, BuzzwordReward: 500,
		Unlocks:      []string{"time_manipulation", "parallel_universes"},
		VisualEffect: "reality-2", GlitchChance: 0.25,
	},
	{
		ID: 3, Name: "Cosmic CEO",
		Description:    "You are the market. The market is you.",
		Cost:           10_000_000_000, BuzzwordReward: 2000,
		Unlocks:      []string{"reality_warping", "secret_upgrades"},
		VisualEffect: "reality-3", GlitchChance: 0.5,
	},
	{
		ID: 4, Name: "§Y▓T▓X ER█OR",
		Description:    "R̸̡̛̘̗̫E̸͓͋A̶̧̯̓L̶̰̈́I̸̱̽T̴̰̀Y̶̱͝.̵̗̄E̸̘͝X̸̰̚E̴͚̊ ̷̣̈́H̶̗̃A̸̰͋S̶̱̈ ̶̢̔S̴̰̈T̸̗̓O̴̢̎P̸̰̚P̴̢̛E̵̗͝D̸̰̈́",
		Cost:           100_000_000_000, BuzzwordReward: 10000,
		Unlocks:      []string{"the_void", "existence_undefined"},
		VisualEffect: "reality-4", GlitchChance: 1.0,
	},
}

// CurrentTier returns the tier for an id, defaulting to tier 0 when out of
// range.
func CurrentTier(tierID int) AscensionTier {
	if tierID >= 0 && tierID < len(AscensionTiers) {
		return AscensionTiers[tierID]
	}
	return AscensionTiers[0]
}

// NextTier returns the tier above the given one, or nil at the cap.
func NextTier(tierID int) *AscensionTier {
	if tierID < 0 || tierID >= len(AscensionTiers)-1 {
		return nil
	}
	return &AscensionTiers[tierID+1]
}

// SynergyEffect composes multiplicatively for the multipliers and additively
// for flux/meter bonuses; Chaos is an OR across active synergies.
type SynergyEffect struct {
	MoneyMultiplier      float64 `json:"money_multiplier,omitempty"`
	ClickPowerMultiplier float64 `json:"click_power_multiplier,omitempty"`
	AutoMoneyMultiplier  float64 `json:"auto_money_multiplier,omitempty"`
	TemporalFluxGain     float64 `json:"temporal_flux_gain,omitempty"`
	GlitchMeterBonus     float64 `json:"glitch_meter_bonus,omitempty"`
	Chaos                bool    `json:"chaos,omitempty"`
}

type Synergy struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Requires    []string
	Effect      SynergyEffect
}

var Synergies = []Synergy{
	{
		ID: "corporate_dystopia", Name: "Corporate Dystopia", Icon: "😭",
		Description: "HR + Union Busting = Employee tears power the printer",
		Requires:    []string{"hire_hr", "union_busting"},
		Effect:      SynergyEffect{AutoMoneyMultiplier: 2.5, GlitchMeterBonus: 10},
	},
	{
		ID: "infinite_synergy", Name: "Infinite Synergy Loop", Icon: "♾️",
		Description: "Synergy breeds synergy breeds synergy breeds synergy...",
		Requires:    []string{"synergy_team", "consultant"},
		Effect:      SynergyEffect{MoneyMultiplier: 3, Chaos: true},
	},
	{
		ID: "blockchain_ai", Name: "AI Blockchain Nonsense", Icon: "🤖⛓️",
		Description: "Nobody knows what this does. Perfect!",
		Requires:    []string{"blockchain", "useless_ai"},
		Effect:      SynergyEffect{ClickPowerMultiplier: 5, TemporalFluxGain: 50, Chaos: true},
	},
	{
		ID: "ipo_bailout", Name: "Too Big To Care", Icon: "💸🏛️",
		Description: "IPO + Bailout Status = Infinite money glitch (legal)",
		Requires:    []string{"ipo", "too_big_fail"},
		Effect:      SynergyEffect{MoneyMultiplier: 10, AutoMoneyMultiplier: 10},
	},
	{
		ID: "tax_haven_paradise", Name: "Tax Haven Paradise", Icon: "🏝️",
		Description: "Offshore accounts + Creative accounting = No laws apply",
		Requires:    []string{"offshore", "accounting"},
		Effect:      SynergyEffect{MoneyMultiplier: 4, GlitchMeterBonus: 25},
	},
	{
		ID: "metaverse_madness", Name: "Metaverse Madness", Icon: "🥽",
		Description: "VR Office + Blockchain = Money that doesn't exist",
		Requires:    []string{"vr_office", "blockchain"},
		Effect:      SynergyEffect{AutoMoneyMultiplier: 6, TemporalFluxGain: 100, Chaos: true},
	},
	{
		ID: "caffeine_overdrive", Name: "Caffeine Overdrive", Icon: "☕⚡",
		Description: "Coffee Machine + Energy Drinks = Employees vibrate through walls",
		Requires:    []string{"coffee_machine", "energy_drinks"},
		Effect:      SynergyEffect{ClickPowerMultiplier: 3, GlitchMeterBonus: 50},
	},
	{
		ID: "market_manipulation", Name: "Market Manipulation", Icon: "📈💰",
		Description: "Stock Manipulation + Insider Trading = SEC can't catch you",
		Requires:    []string{"stock_manipulation", "insider_trading"},
		Effect:      SynergyEffect{MoneyMultiplier: 8, TemporalFluxGain: 150},
	},
	{
		ID: "meeting_singularity", Name: "Meeting Singularity", Icon: "🕳️",
		Description: "So many meetings they collapse into a black hole",
		Requires:    []string{"meeting_room", "consultant", "hire_manager"},
		Effect:      SynergyEffect{Chaos: true, GlitchMeterBonus: 100},
	},
	{
		ID: "quantum_capitalism", Name: "Quantum Capitalism", Icon: "⚛️",
		Description: "Money exists and doesn't exist until observed",
		Requires:    []string{"blockchain", "useless_ai", "too_big_fail"},
		Effect: SynergyEffect{
			MoneyMultiplier: 20, ClickPowerMultiplier: 10,
			TemporalFluxGain: 500, Chaos: true,
		},
	},
}

// ActiveSynergies returns synergies whose every required upgrade is owned.
// Ownership spans both one-shot purchases and repeatable counts.
func ActiveSynergies(s *State) []Synergy {
	out := []Synergy{}
	for _, sy := range Synergies {
		active := true
		for _, req := range sy.Requires {
			if !s.Owns(req) {
				active = false
				break
			}
		}
		if active {
			out = append(out, sy)
		}
	}
	return out
}

// SynergyMultipliers folds all active synergies into one aggregate effect.
func SynergyMultipliers(s *State) SynergyEffect {
	agg := SynergyEffect{MoneyMultiplier: 1, ClickPowerMultiplier: 1, AutoMoneyMultiplier: 1}
	for _, sy := range ActiveSynergies(s) {
		if m := sy.Effect.MoneyMultiplier; m != 0 {
			agg.MoneyMultiplier *= m
		}
		if m := sy.Effect.ClickPowerMultiplier; m != 0 {
			agg.ClickPowerMultiplier *= m
		}
		if m := sy.Effect.AutoMoneyMultiplier; m != 0 {
			agg.AutoMoneyMultiplier *= m
		}
		agg.TemporalFluxGain += sy.Effect.TemporalFluxGain
		agg.GlitchMeterBonus += sy.Effect.GlitchMeterBonus
		agg.Chaos = agg.Chaos || sy.Effect.Chaos
	}
	return agg
}

// Glitch is a reality malfunction. Effect resets the meter itself; money
// gains get diminishing-returns scaling in the engine, not here.
type Glitch struct {
	ID            string
	Name          string
	Description   string
	Icon          string
	Duration      time.Duration
	TriggerChance float64
	VisualEffect  string
	Effect        func(s *State) Change
}

var Glitches = []Glitch{
	{
		ID: "money_overflow", Name: "INTEGER OVERFLOW", Icon: "💰",
		Description:   "You clicked so fast money went negative then positive again",
		Duration:      10 * time.Second, TriggerChance: 0.3, VisualEffect: "glitch-shake",
		Effect: func(s *State) Change {
			return Change{Money: num(s.Money * 2), GlitchMeter: num(0)}
		},
	},
	{
		ID: "duplicate_employees", Name: "EMPLOYEE DUPLICATION", Icon: "👥",
		Description:   "Employees started mitosis. There are now twice as many.",
		Duration:      15 * time.Second, TriggerChance: 0.2, VisualEffect: "glitch-double",
		Effect: func(s *State) Change {
			return Change{
				Employees:   cnt(s.Employees * 2),
				AutoMoney:   num(s.AutoMoney * 1.5),
				GlitchMeter: num(0),
			}
		},
	},
	{
		ID: "time_skip", Name: "TIME SKIP", Icon: "⏭️",
		Description:   "You blinked and 10 seconds passed",
		Duration:      5 * time.Second, TriggerChance: 0.25, VisualEffect: "glitch-timeskip",
		Effect: func(s *State) Change {
			return Change{
				Money:        num(s.Money + s.AutoMoney*10),
				TemporalFlux: num(s.TemporalFlux + 100),
				GlitchMeter:  num(0),
			}
		},
	},
	{
		ID: "reality_crack", Name: "REALITY CRACK", Icon: "⚡",
		Description:   "The fabric of corporate reality is tearing",
		Duration:      20 * time.Second, TriggerChance: 0.15, VisualEffect: "glitch-crack",
		Effect: func(s *State) Change {
			return Change{
				ClickPower:       num(s.ClickPower * 5),
				RealityStability: num(s.RealityStability - 20),
				GlitchMeter:      num(0),
			}
		},
	},
	{
		ID: "negative_liability", Name: "NEGATIVE LIABILITY", Icon: "⚖️",
		Description:   "Your legal problems are now legal solutions",
		Duration:      30 * time.Second, TriggerChance: 0.1, VisualEffect: "glitch-invert",
		Effect: func(s *State) Change {
			abs := s.LegalLiability
			if abs < 0 {
				abs = -abs
			}
			return Change{
				LegalLiability: num(-abs),
				Money:          num(s.Money + abs*1000),
				GlitchMeter:    num(0),
			}
		},
	},
	{
		ID: "clone_upgrades", Name: "UPGRADE CLONING", Icon: "🛍️",
		Description:   "All your upgrades just... doubled",
		Duration:      60 * time.Second, TriggerChance: 0.05, VisualEffect: "glitch-clone",
		Effect: func(s *State) Change {
			return Change{
				ClickPower:  num(s.ClickPower * 2),
				AutoMoney:   num(s.AutoMoney * 2),
				GlitchMeter: num(0),
			}
		},
	},
	{
		ID: "buzzword_explosion", Name: "BUZZWORD EXPLOSION", Icon: "💥",
		Description:   "Synergy! Pivot! Disrupt! AHHHHHHHHH",
		Duration:      15 * time.Second, TriggerChance: 0.2, VisualEffect: "glitch-explode",
		Effect: func(s *State) Change {
			return Change{
				BuzzwordLevel: cnt(s.BuzzwordLevel + 10),
				Money:         num(s.Money * 1.5),
				GlitchMeter:   num(0),
			}
		},
	},
	{
		ID: "stack_overflow", Name: "STACK OVERFLOW", Icon: "📚",
		Description:   "Too much recursion. Money growing exponentially.",
		Duration:      20 * time.Second, TriggerChance: 0.15, VisualEffect: "glitch-stack",
		Effect: func(s *State) Change {
			return Change{AutoMoney: num(s.AutoMoney * 3), GlitchMeter: num(0)}
		},
	},
	{
		ID: "existence_error", Name: "§Y§T£M ERR*R", Icon: "❌",
		Description:   "R̸E̸A̸L̸I̸T̸Y̸.̸E̸X̸E̸ has encountered a problem",
		Duration:      5 * time.Second, TriggerChance: 0.05, VisualEffect: "glitch-reality",
		Effect: func(s *State) Change {
			return Change{
				Money:            num(s.Money * 10),
				RealityStability: num(0),
				GlitchMeter:      num(0),
			}
		},
	},
}

// PickGlitch selects a glitch by cumulative trigger chance; roll is uniform
// in [0,1).
func PickGlitch(roll float64) *Glitch {
	total := float64(0)
	for _, g := range Glitches {
		total += g.TriggerChance
	}
	r := roll * total
	for i := range Glitches {
		r -= Glitches[i].TriggerChance
		if r <= 0 {
			return &Glitches[i]
		}
	}
	return &Glitches[0]
}

// GlitchByID returns the catalog entry, or nil for an unknown id.
func GlitchByID(id string) *Glitch {
	for i := range Glitches {
		if Glitches[i].ID == id {
			return &Glitches[i]
		}
	}
	return nil
}
