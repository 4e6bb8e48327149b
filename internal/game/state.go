package game

import (
	"slices"
	"time"
)

const (
	BaseClickPower       = float64(1)
	BaseElectrolytes     = float64(100)
	BaseBuzzwordLevel    = 1
	BaseRealityStability = float64(100)

	// Reality is shakier after every ascension.
	PostAscensionStability = float64(50)
)

// State is the full game-state aggregate for one session. It is owned by an
// Engine; everything outside the engine only sees copies via Snapshot.
// All fields round-trip through JSON verbatim, so a snapshot store can
// persist and restore a session without knowing anything about the rules.
type State struct {
	// Core resources
	Money      float64 `json:"money"`
	ClickPower float64 `json:"click_power"`
	AutoMoney  float64 `json:"auto_money"`

	// Advanced resources
	BuzzwordPoints float64 `json:"buzzword_points"`
	LegalLiability float64 `json:"legal_liability"`
	Caffeine       float64 `json:"caffeine"`
	MeetingTime    float64 `json:"meeting_time"`

	// Basic stats
	Synergy       float64 `json:"synergy"`
	Electrolytes  float64 `json:"electrolytes"`
	Employees     int     `json:"employees"`
	BuzzwordLevel int     `json:"buzzword_level"`

	// Upgrade tracking. One-shot upgrades live in PurchasedUpgrades,
	// repeatables in UpgradeCount; an id never appears in both.
	PurchasedUpgrades   []string       `json:"purchased_upgrades"`
	UpgradeCount        map[string]int `json:"upgrade_count"`
	PurchasedBPUpgrades []string       `json:"purchased_bp_upgrades"`

	// Achievements, in unlock order.
	UnlockedAchievements []string `json:"unlocked_achievements"`

	// Prestige / meta
	LifetimeEarnings  float64              `json:"lifetime_earnings"`
	BankruptcyCount   int                  `json:"bankruptcy_count"`
	AscensionTier     int                  `json:"ascension_tier"`
	TotalAscensions   int                  `json:"total_ascensions"`
	TemporalFlux      float64              `json:"temporal_flux"`
	RealityStability  float64              `json:"reality_stability"`
	GlitchMeter       float64              `json:"glitch_meter"`
	ActiveGlitches    []string             `json:"active_glitches"`
	GlitchExpiry      map[string]time.Time `json:"glitch_expiry"`
	RecentGlitchCount float64              `json:"recent_glitch_count"`
	SecretsUnlocked   []string             `json:"secrets_unlocked"`
	MaxMoneyThisRun   float64              `json:"max_money_this_run"`

	// Tracking
	TotalClicks    int       `json:"total_clicks"`
	LifetimeClicks int       `json:"lifetime_clicks"`
	StartTime      time.Time `json:"start_time"`
	LastClickTime  time.Time `json:"last_click_time"`
	ClickCombo     int       `json:"click_combo"`
}

// NewState returns a fresh session state at tier 0 defaults.
func NewState(now time.Time) *State {
	return &State{
		ClickPower:       BaseClickPower,
		Electrolytes:     BaseElectrolytes,
		BuzzwordLevel:    BaseBuzzwordLevel,
		RealityStability: BaseRealityStability,
		UpgradeCount:     map[string]int{},
		GlitchExpiry:     map[string]time.Time{},
		StartTime:        now,
	}
}

// Owns reports whether the given upgrade is owned, either as a one-shot
// purchase or with at least one repeatable purchase.
func (s *State) Owns(id string) bool {
	if slices.Contains(s.PurchasedUpgrades, id) {
		return true
	}
	return s.UpgradeCount[id] > 0
}

// OwnsBP reports whether a buzzword-shop upgrade has been bought.
func (s *State) OwnsBP(id string) bool {
	return slices.Contains(s.PurchasedBPUpgrades, id)
}

func (s *State) hasAchievement(id string) bool {
	return slices.Contains(s.UnlockedAchievements, id)
}

// touchHighWaterMarks refreshes the monotonic money trackers.
func (s *State) touchHighWaterMarks() {
	if s.Money > s.LifetimeEarnings {
		s.LifetimeEarnings = s.Money
	}
	if s.Money > s.MaxMoneyThisRun {
		s.MaxMoneyThisRun = s.Money
	}
}

// Change is a sparse absolute update produced by event and glitch effects.
// Nil fields are left untouched; set fields replace the current value, with
// clamping applied at the point of mutation.
type Change struct {
	Money            *float64
	ClickPower       *float64
	AutoMoney        *float64
	Synergy          *float64
	Electrolytes     *float64
	Employees        *int
	BuzzwordLevel    *int
	LegalLiability   *float64
	MeetingTime      *float64
	TemporalFlux     *float64
	RealityStability *float64
	GlitchMeter      *float64
}

func (s *State) apply(c Change) {
	if c.Money != nil {
		s.Money = max(0, *c.Money)
	}
	if c.ClickPower != nil {
		s.ClickPower = max(BaseClickPower, *c.ClickPower)
	}
	if c.AutoMoney != nil {
		s.AutoMoney = max(0, *c.AutoMoney)
	}
	if c.Synergy != nil {
		s.Synergy = clampPercent(*c.Synergy)
	}
	if c.Electrolytes != nil {
		s.Electrolytes = clampPercent(*c.Electrolytes)
	}
	if c.Employees != nil {
		s.Employees = max(0, *c.Employees)
	}
	if c.BuzzwordLevel != nil {
		s.BuzzwordLevel = max(BaseBuzzwordLevel, *c.BuzzwordLevel)
	}
	if c.LegalLiability != nil {
		// Negative liability is a valid (beneficial) state, no clamp.
		s.LegalLiability = *c.LegalLiability
	}
	if c.MeetingTime != nil {
		s.MeetingTime = max(0, *c.MeetingTime)
	}
	if c.TemporalFlux != nil {
		s.TemporalFlux = max(0, *c.TemporalFlux)
	}
	if c.RealityStability != nil {
		s.RealityStability = clampPercent(*c.RealityStability)
	}
	if c.GlitchMeter != nil {
		s.GlitchMeter = clampPercent(*c.GlitchMeter)
	}
	s.touchHighWaterMarks()
}

func clampPercent(v float64) float64 {
	return min(100, max(0, v))
}

// clone returns a deep copy suitable for handing outside the engine.
func (s *State) clone() *State {
	out := *s
	out.PurchasedUpgrades = slices.Clone(s.PurchasedUpgrades)
	out.PurchasedBPUpgrades = slices.Clone(s.PurchasedBPUpgrades)
	out.UnlockedAchievements = slices.Clone(s.UnlockedAchievements)
	out.ActiveGlitches = slices.Clone(s.ActiveGlitches)
	out.SecretsUnlocked = slices.Clone(s.SecretsUnlocked)
	out.UpgradeCount = make(map[string]int, len(s.UpgradeCount))
	for k, v := range s.UpgradeCount {
		out.UpgradeCount[k] = v
	}
	out.GlitchExpiry = make(map[string]time.Time, len(s.GlitchExpiry))
	for k, v := range s.GlitchExpiry {
		out.GlitchExpiry[k] = v
	}
	return &out
}

// Helpers for building Change literals in the content tables.
func num(v float64) *float64 { return &v }
func cnt(v int) *int         { return &v }
