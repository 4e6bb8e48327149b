package game

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"
)

// Tick cadence constants. The periodic drivers fire on fixed schedules and
// each firing applies exactly one step's worth of deltas; missed firings are
// not backfilled.
const (
	TickInterval        = time.Second
	EventInterval       = 5 * time.Second
	GlitchInterval      = time.Second
	AchievementInterval = 2 * time.Second

	eventChance = 0.1

	synergyPerEmployee  = 0.1
	electrolyteDrain    = 0.5
	meetingTimeDecay    = 0.2
	glitchMeterDecay    = 1.0
	stabilityRegen      = 0.5
	recentGlitchWindow  = 60.0 // seconds to decay one recent-glitch unit
	glitchMoneyFalloff  = 0.8
	comboWindow         = 500 * time.Millisecond
	comboFastWindow     = 200 * time.Millisecond
)

// Engine owns one session's state. Every public method takes the mutex, so
// the periodic drivers and user actions can run from different goroutines
// while each state transition stays atomic.
type Engine struct {
	mu  sync.Mutex
	st  *State
	rng *rand.Rand
	now func() time.Time
	log *slog.Logger
}

// NewEngine returns an engine over a fresh state.
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
		log: log,
	}
	e.st = NewState(e.now())
	return e
}

// NewEngineFromState wraps a restored snapshot.
func NewEngineFromState(st *State, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if st.UpgradeCount == nil {
		st.UpgradeCount = map[string]int{}
	}
	if st.GlitchExpiry == nil {
		st.GlitchExpiry = map[string]time.Time{}
	}
	return &Engine{
		st:  st,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
		log: log,
	}
}

func (e *Engine) nextFloat() float64 {
	return e.rng.Float64()
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.clone()
}

// AvailableUpgrades lists purchasable catalog entries for the current state.
func (e *Engine) AvailableUpgrades() []Upgrade {
	e.mu.Lock()
	defer e.mu.Unlock()
	return AvailableUpgrades(e.st)
}

// ActiveSynergies lists currently active synergy combos.
func (e *Engine) ActiveSynergies() []Synergy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ActiveSynergies(e.st)
}

// SynergyMultipliers returns the folded synergy effect.
func (e *Engine) SynergyMultipliers() SynergyEffect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return SynergyMultipliers(e.st)
}

// BPMultipliers returns the folded buzzword-shop bonuses.
func (e *Engine) BPMultipliers() BPMultipliers {
	e.mu.Lock()
	defer e.mu.Unlock()
	return AggregateBPMultipliers(e.st)
}

// CurrentTier returns the tier the session is in.
func (e *Engine) CurrentTier() AscensionTier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CurrentTier(e.st.AscensionTier)
}

// NextTier returns the tier above the current one, or nil at the cap.
func (e *Engine) NextTier() *AscensionTier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return NextTier(e.st.AscensionTier)
}

// CanAscend reports whether the ascend preconditions currently hold.
func (e *Engine) CanAscend() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canAscendLocked()
}

func (e *Engine) canAscendLocked() bool {
	next := NextTier(e.st.AscensionTier)
	return next != nil && e.st.Money >= next.Cost
}

// ClickResult reports what a single click earned.
type ClickResult struct {
	Earned          float64 `json:"earned"`
	Combo           int     `json:"combo"`
	ComboMultiplier float64 `json:"combo_multiplier"`
	GlitchMeter     float64 `json:"glitch_meter"`
}

// Click processes one button press. It never fails.
func (e *Engine) Click() ClickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	gap := now.Sub(e.st.LastClickTime)
	if !e.st.LastClickTime.IsZero() && gap < comboWindow {
		e.st.ClickCombo++
	} else {
		e.st.ClickCombo = 1
	}

	comboMult := float64(1)
	switch {
	case e.st.ClickCombo >= 50:
		comboMult = 10
	case e.st.ClickCombo >= 25:
		comboMult = 5
	case e.st.ClickCombo >= 10:
		comboMult = 2
	}

	sm := SynergyMultipliers(e.st)
	bp := AggregateBPMultipliers(e.st)
	earned := e.st.ClickPower * sm.ClickPowerMultiplier * sm.MoneyMultiplier *
		bp.GlobalClickMultiplier * bp.GlobalMoneyMultiplier * comboMult

	e.st.Money += earned
	e.st.touchHighWaterMarks()
	e.st.Synergy = clampPercent(e.st.Synergy + 1)
	e.st.TotalClicks++
	e.st.LifetimeClicks++

	var charge float64
	if !e.st.LastClickTime.IsZero() {
		switch {
		case gap < comboFastWindow:
			charge = 2
		case gap < comboWindow:
			charge = 1
		}
	}
	if charge > 0 {
		charge = (charge + sm.GlitchMeterBonus/100) * bp.GlitchMeterFillRate
		e.st.GlitchMeter = clampPercent(e.st.GlitchMeter + charge)
	}
	e.st.LastClickTime = now

	return ClickResult{
		Earned:          earned,
		Combo:           e.st.ClickCombo,
		ComboMultiplier: comboMult,
		GlitchMeter:     e.st.GlitchMeter,
	}
}

// PurchaseResult reports the outcome of a buy action. Applied is false for
// unknown ids and unaffordable purchases; both are silent no-ops.
type PurchaseResult struct {
	Applied      bool     `json:"applied"`
	Cost         float64  `json:"cost,omitempty"`
	NewSynergies []string `json:"new_synergies,omitempty"`
	TemporalFlux float64  `json:"temporal_flux_gained,omitempty"`
}

// BuyUpgrade attempts to purchase one catalog upgrade.
func (e *Engine) BuyUpgrade(id string) PurchaseResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	u := UpgradeByID(id)
	if u == nil {
		return PurchaseResult{}
	}
	if !u.Repeatable() && e.st.Owns(id) {
		return PurchaseResult{}
	}
	cost := UpgradeCost(u, e.st.UpgradeCount[id])
	if e.st.Money < cost {
		return PurchaseResult{}
	}

	before := ActiveSynergies(e.st)

	e.st.Money -= cost
	if u.Repeatable() {
		e.st.UpgradeCount[id]++
	} else {
		e.st.PurchasedUpgrades = append(e.st.PurchasedUpgrades, id)
	}

	e.applyUpgradeEffect(u)

	switch u.Special {
	case SpecialRefillElectrolytes:
		e.st.Electrolytes = 100
	case SpecialSlowElectrolyteDrain:
		// Passive; the tick drain checks ownership.
	}

	res := PurchaseResult{Applied: true, Cost: cost}

	// A purchase that completes a synergy grants its flux bonus once.
	after := ActiveSynergies(e.st)
	if len(after) > len(before) {
		bp := AggregateBPMultipliers(e.st)
		owned := make(map[string]bool, len(before))
		for _, sy := range before {
			owned[sy.ID] = true
		}
		for _, sy := range after {
			if owned[sy.ID] {
				continue
			}
			res.NewSynergies = append(res.NewSynergies, sy.ID)
			if sy.Effect.TemporalFluxGain > 0 {
				gain := sy.Effect.TemporalFluxGain * bp.TemporalFluxGainMultiplier
				e.st.TemporalFlux += gain
				res.TemporalFlux += gain
			}
		}
	}

	e.st.touchHighWaterMarks()
	e.log.Debug("upgrade purchased", "upgrade", id, "cost", cost)
	return res
}

func (e *Engine) applyUpgradeEffect(u *Upgrade) {
	eff := u.Effect
	e.st.ClickPower += eff.ClickPower
	e.st.AutoMoney = max(0, e.st.AutoMoney+eff.AutoMoney)
	e.st.Employees = max(0, e.st.Employees+eff.Employees)
	e.st.Synergy = clampPercent(e.st.Synergy + eff.Synergy)
	e.st.BuzzwordLevel = max(BaseBuzzwordLevel, e.st.BuzzwordLevel+eff.BuzzwordLevel)
	// Liability deltas are not clamped downward; negative is beneficial.
	e.st.LegalLiability += eff.LegalLiability
	e.st.MeetingTime = max(0, e.st.MeetingTime+eff.MeetingTime)
	e.st.Money += eff.InstantMoney
}

// BuyBuzzwordUpgrade attempts a prestige-shop purchase. BP items are
// one-shot only.
func (e *Engine) BuyBuzzwordUpgrade(id string) PurchaseResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	bu := BuzzwordUpgradeByID(id)
	if bu == nil || e.st.OwnsBP(id) {
		return PurchaseResult{}
	}
	if e.st.BuzzwordPoints < bu.Cost {
		return PurchaseResult{}
	}
	e.st.BuzzwordPoints -= bu.Cost
	e.st.PurchasedBPUpgrades = append(e.st.PurchasedBPUpgrades, id)
	e.log.Debug("buzzword upgrade purchased", "upgrade", id, "cost", bu.Cost)
	return PurchaseResult{Applied: true, Cost: bu.Cost}
}

// AscendResult reports a prestige reset.
type AscendResult struct {
	Applied        bool    `json:"applied"`
	Tier           int     `json:"tier,omitempty"`
	TierName       string  `json:"tier_name,omitempty"`
	BuzzwordReward float64 `json:"buzzword_reward,omitempty"`
}

// Ascend performs the prestige reset when the next tier's cost is met. The
// reset is atomic: on precondition failure nothing changes.
func (e *Engine) Ascend() AscendResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := NextTier(e.st.AscensionTier)
	if next == nil || e.st.Money < next.Cost {
		return AscendResult{}
	}

	bp := AggregateBPMultipliers(e.st)
	now := e.now()

	carried := &State{
		BuzzwordPoints:       e.st.BuzzwordPoints + next.BuzzwordReward,
		PurchasedBPUpgrades:  e.st.PurchasedBPUpgrades,
		LifetimeEarnings:     e.st.LifetimeEarnings,
		UnlockedAchievements: e.st.UnlockedAchievements,
		LifetimeClicks:       e.st.LifetimeClicks,
		SecretsUnlocked:      e.st.SecretsUnlocked,
		TemporalFlux:         e.st.TemporalFlux,
		TotalAscensions:      e.st.TotalAscensions + 1,
		BankruptcyCount:      e.st.BankruptcyCount + 1,
		AscensionTier:        next.ID,

		Money:            bp.StartingMoney,
		ClickPower:       BaseClickPower + bp.StartingClickPower,
		AutoMoney:        bp.StartingAutoMoney,
		Electrolytes:     BaseElectrolytes,
		BuzzwordLevel:    BaseBuzzwordLevel,
		RealityStability: PostAscensionStability,
		UpgradeCount:     map[string]int{},
		GlitchExpiry:     map[string]time.Time{},
		StartTime:        now,
	}
	carried.MaxMoneyThisRun = carried.Money
	e.st = carried

	e.log.Info("ascended", "tier", next.ID, "tier_name", next.Name, "reward", next.BuzzwordReward)
	return AscendResult{
		Applied:        true,
		Tier:           next.ID,
		TierName:       next.Name,
		BuzzwordReward: next.BuzzwordReward,
	}
}

// Tick applies one accrual step. Exactly one step's deltas regardless of
// how late the timer fired.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	sm := SynergyMultipliers(e.st)
	bp := AggregateBPMultipliers(e.st)

	// Production never drops below 50%, even bone dry.
	penalty := 0.5 + 0.5*e.st.Electrolytes/100
	income := e.st.AutoMoney * sm.AutoMoneyMultiplier * sm.MoneyMultiplier *
		bp.GlobalAutoMultiplier * bp.GlobalMoneyMultiplier * penalty
	e.st.Money += income
	e.st.touchHighWaterMarks()

	e.st.Synergy = clampPercent(e.st.Synergy + float64(e.st.Employees)*synergyPerEmployee)

	drain := electrolyteDrain * bp.ElectrolyteDrainMultiplier
	if e.st.Owns("energy_drinks") {
		drain /= 2
	}
	e.st.Electrolytes = max(0, e.st.Electrolytes-drain)

	e.st.MeetingTime = max(0, e.st.MeetingTime-meetingTimeDecay)
	e.st.GlitchMeter = max(0, e.st.GlitchMeter-glitchMeterDecay)
	e.st.RealityStability = min(100, e.st.RealityStability+stabilityRegen)

	step := TickInterval.Seconds() / recentGlitchWindow
	e.st.RecentGlitchCount = max(0, e.st.RecentGlitchCount-step)

	e.expireGlitchesLocked(e.now())
}

func (e *Engine) expireGlitchesLocked(now time.Time) {
	if len(e.st.ActiveGlitches) == 0 {
		return
	}
	kept := e.st.ActiveGlitches[:0]
	for _, id := range e.st.ActiveGlitches {
		if exp, ok := e.st.GlitchExpiry[id]; ok && now.After(exp) {
			delete(e.st.GlitchExpiry, id)
			continue
		}
		kept = append(kept, id)
	}
	e.st.ActiveGlitches = kept
}

// EventResult carries a fired random event's toast, or Fired=false when the
// roll came up empty.
type EventResult struct {
	Fired bool   `json:"fired"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Sound string `json:"sound,omitempty"`
}

// RollEvent runs one random-event draw: a 10% chance gate, then a weighted
// pick over the eligible table.
func (e *Engine) RollEvent() EventResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.nextFloat() >= eventChance {
		return EventResult{}
	}
	candidates := EligibleEvents(e.st)
	ev := PickWeighted(candidates, e.nextFloat())
	if ev == nil {
		return EventResult{}
	}
	e.st.apply(ev.Effect(e.st, e.nextFloat()))
	e.log.Debug("random event", "event", ev.ID)
	return EventResult{Fired: true, ID: ev.ID, Text: ev.Text, Sound: ev.Sound}
}

// GlitchResult carries a triggered glitch, or Fired=false.
type GlitchResult struct {
	Fired bool   `json:"fired"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text,omitempty"`
}

// RollGlitch checks the meter gate and the tier's trigger probability, then
// fires a weighted-random glitch. Money gains shrink by 0.8 per recent
// glitch so farming the meter pays exponentially less.
func (e *Engine) RollGlitch() GlitchResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GlitchMeter < 100 {
		return GlitchResult{}
	}
	tier := CurrentTier(e.st.AscensionTier)
	if e.nextFloat() >= tier.GlitchChance {
		return GlitchResult{}
	}

	g := PickGlitch(e.nextFloat())
	moneyBefore := e.st.Money
	ch := g.Effect(e.st)
	if ch.Money != nil && *ch.Money > moneyBefore {
		factor := math.Pow(glitchMoneyFalloff, e.st.RecentGlitchCount)
		scaled := moneyBefore + (*ch.Money-moneyBefore)*factor
		ch.Money = &scaled
	}
	e.st.apply(ch)

	now := e.now()
	if !slices.Contains(e.st.ActiveGlitches, g.ID) {
		e.st.ActiveGlitches = append(e.st.ActiveGlitches, g.ID)
	}
	e.st.GlitchExpiry[g.ID] = now.Add(g.Duration)
	e.st.RecentGlitchCount++

	e.log.Info("glitch triggered", "glitch", g.ID, "tier", tier.ID)
	return GlitchResult{Fired: true, ID: g.ID, Name: g.Name, Text: g.Description}
}

// CheckAchievements unlocks every newly-satisfied achievement, in table
// order, and reports each exactly once.
func (e *Engine) CheckAchievements() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var unlocked []Achievement
	for _, a := range Achievements {
		if e.st.hasAchievement(a.ID) {
			continue
		}
		if a.Check(e.st, now) {
			e.st.UnlockedAchievements = append(e.st.UnlockedAchievements, a.ID)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
