package game

import (
	"encoding/json"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	e := NewEngine(nil)
	e.rng = rand.New(rand.NewSource(1))
	e.now = func() time.Time { return now }
	e.st = NewState(now)
	return e, &now
}

func TestUpgradeCostSequence(t *testing.T) {
	u := UpgradeByID("hire_intern")
	if u == nil {
		t.Fatalf("hire_intern missing from catalog")
	}
	want := []float64{100, 115, 132}
	for i, w := range want {
		if got := UpgradeCost(u, i); got != w {
			t.Fatalf("cost at count %d = %v, want %v", i, got, w)
		}
	}
}

func TestOneShotCostIgnoresCount(t *testing.T) {
	u := UpgradeByID("blockchain")
	if u == nil {
		t.Fatalf("blockchain missing from catalog")
	}
	if got := UpgradeCost(u, 3); got != 5000 {
		t.Fatalf("one-shot cost = %v, want 5000", got)
	}
}

func TestClickScenario(t *testing.T) {
	e, now := newTestEngine(t)

	res := e.Click()
	if res.Earned != 1 {
		t.Fatalf("first click earned %v, want 1", res.Earned)
	}
	st := e.Snapshot()
	if st.Money != 1 || st.TotalClicks != 1 || st.ClickCombo != 1 {
		t.Fatalf("after first click: money=%v clicks=%d combo=%d", st.Money, st.TotalClicks, st.ClickCombo)
	}

	// Unaffordable purchase is a silent no-op.
	if r := e.BuyUpgrade("better_fingers"); r.Applied {
		t.Fatalf("purchase applied with money=1")
	}
	st = e.Snapshot()
	if st.Money != 1 || st.ClickPower != 1 {
		t.Fatalf("rejected purchase mutated state: money=%v clickPower=%v", st.Money, st.ClickPower)
	}

	// Slow clicks keep the combo at 1.
	for i := 0; i < 49; i++ {
		*now = now.Add(time.Second)
		e.Click()
	}
	st = e.Snapshot()
	if st.Money != 50 || st.ClickCombo != 1 {
		t.Fatalf("after 50 slow clicks: money=%v combo=%d", st.Money, st.ClickCombo)
	}

	if r := e.BuyUpgrade("better_fingers"); !r.Applied || r.Cost != 50 {
		t.Fatalf("purchase not applied at money=50: %+v", r)
	}
	st = e.Snapshot()
	if st.Money != 0 || st.ClickPower != 2 {
		t.Fatalf("after purchase: money=%v clickPower=%v", st.Money, st.ClickPower)
	}
}

func TestComboBands(t *testing.T) {
	e, now := newTestEngine(t)

	var mults []float64
	for i := 0; i < 50; i++ {
		*now = now.Add(100 * time.Millisecond)
		mults = append(mults, e.Click().ComboMultiplier)
	}
	if mults[8] != 1 {
		t.Fatalf("9th click multiplier = %v, want 1", mults[8])
	}
	if mults[9] != 2 {
		t.Fatalf("10th click multiplier = %v, want 2", mults[9])
	}
	if mults[24] != 5 {
		t.Fatalf("25th click multiplier = %v, want 5", mults[24])
	}
	if mults[49] != 10 {
		t.Fatalf("50th click multiplier = %v, want 10", mults[49])
	}
}

func TestComboResetsAfterGap(t *testing.T) {
	e, now := newTestEngine(t)
	for i := 0; i < 12; i++ {
		*now = now.Add(100 * time.Millisecond)
		e.Click()
	}
	*now = now.Add(2 * time.Second)
	if res := e.Click(); res.Combo != 1 || res.ComboMultiplier != 1 {
		t.Fatalf("combo after gap = %d (x%v), want 1 (x1)", res.Combo, res.ComboMultiplier)
	}
}

func TestGlitchMeterChargesOnFastClicks(t *testing.T) {
	e, now := newTestEngine(t)
	e.Click()
	*now = now.Add(100 * time.Millisecond)
	res := e.Click()
	if res.GlitchMeter != 2 {
		t.Fatalf("meter after <200ms click = %v, want 2", res.GlitchMeter)
	}
	*now = now.Add(300 * time.Millisecond)
	res = e.Click()
	if res.GlitchMeter != 3 {
		t.Fatalf("meter after <500ms click = %v, want 3", res.GlitchMeter)
	}
	*now = now.Add(5 * time.Second)
	res = e.Click()
	if res.GlitchMeter != 3 {
		t.Fatalf("meter after slow click = %v, want 3", res.GlitchMeter)
	}
}

func TestPurchaseIdempotency(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 20000

	if r := e.BuyUpgrade("blockchain"); !r.Applied {
		t.Fatalf("first blockchain purchase rejected")
	}
	st := e.Snapshot()
	if st.Money != 20000-5000+10000 {
		t.Fatalf("money after blockchain = %v, want 25000", st.Money)
	}
	if r := e.BuyUpgrade("blockchain"); r.Applied {
		t.Fatalf("one-shot purchased twice")
	}
	st = e.Snapshot()
	if got := len(st.PurchasedUpgrades); got != 1 {
		t.Fatalf("purchased list length = %d, want 1", got)
	}
}

func TestRepeatablePurchaseBookkeeping(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 1000

	for i := 0; i < 3; i++ {
		if r := e.BuyUpgrade("hire_intern"); !r.Applied {
			t.Fatalf("purchase %d rejected", i)
		}
	}
	st := e.Snapshot()
	if st.UpgradeCount["hire_intern"] != 3 {
		t.Fatalf("count = %d, want 3", st.UpgradeCount["hire_intern"])
	}
	if len(st.PurchasedUpgrades) != 0 {
		t.Fatalf("repeatable leaked into purchased list: %v", st.PurchasedUpgrades)
	}
	if st.Money != 1000-100-115-132 {
		t.Fatalf("money = %v, want %v", st.Money, 1000-100-115-132)
	}
	if st.Employees != 3 || st.AutoMoney != 3 {
		t.Fatalf("employees=%d autoMoney=%v, want 3/3", st.Employees, st.AutoMoney)
	}
}

func TestUnknownUpgradeIsNoOp(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 500
	if r := e.BuyUpgrade("definitely_not_real"); r.Applied {
		t.Fatalf("unknown upgrade applied")
	}
	if e.Snapshot().Money != 500 {
		t.Fatalf("unknown upgrade charged money")
	}
}

func TestSpecialEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 200
	e.st.Electrolytes = 12
	if r := e.BuyUpgrade("more_electrolytes"); !r.Applied {
		t.Fatalf("more_electrolytes rejected")
	}
	if got := e.Snapshot().Electrolytes; got != 100 {
		t.Fatalf("electrolytes = %v, want 100 after refill", got)
	}

	e.st.Money = 20000
	if r := e.BuyUpgrade("energy_drinks"); !r.Applied {
		t.Fatalf("energy_drinks rejected")
	}
	before := e.Snapshot().Electrolytes
	e.Tick()
	after := e.Snapshot().Electrolytes
	if before-after != 0.25 {
		t.Fatalf("drain with energy_drinks = %v, want 0.25", before-after)
	}
}

func TestTickIncomeAndElectrolytePenalty(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.AutoMoney = 100
	e.st.Electrolytes = 0

	e.Tick()
	st := e.Snapshot()
	// Even at zero electrolytes, production holds at 50%.
	if st.Money != 50 {
		t.Fatalf("income at zero electrolytes = %v, want 50", st.Money)
	}
}

func TestTickSynergyGrowthAndClamp(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Employees = 30
	e.st.Synergy = 99
	e.Tick()
	if got := e.Snapshot().Synergy; got != 100 {
		t.Fatalf("synergy = %v, want clamped 100", got)
	}
}

func TestAvailableUpgradesFiltering(t *testing.T) {
	e, _ := newTestEngine(t)

	ids := func() map[string]bool {
		m := map[string]bool{}
		for _, u := range e.AvailableUpgrades() {
			m[u.ID] = true
		}
		return m
	}

	got := ids()
	if got["meme_stock"] {
		t.Fatalf("meme_stock offered without went_public achievement")
	}
	if got["too_big_fail"] {
		t.Fatalf("too_big_fail offered without a bankruptcy")
	}
	if !got["better_fingers"] || !got["blockchain"] {
		t.Fatalf("baseline upgrades missing: %v", got)
	}

	// One-shots disappear after purchase; repeatables stay.
	e.st.Money = 1e6
	e.BuyUpgrade("blockchain")
	e.BuyUpgrade("hire_intern")
	got = ids()
	if got["blockchain"] {
		t.Fatalf("owned one-shot still offered")
	}
	if !got["hire_intern"] {
		t.Fatalf("repeatable hidden after purchase")
	}

	e.st.BankruptcyCount = 1
	e.st.UnlockedAchievements = append(e.st.UnlockedAchievements, "went_public")
	got = ids()
	if !got["meme_stock"] || !got["too_big_fail"] {
		t.Fatalf("gated upgrades still hidden after requirements met")
	}
}

func TestEligibleEventsRespectRequirements(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, ev := range EligibleEvents(e.st) {
		if r := ev.Requires; r != nil {
			if r.MinMoney > 0 || r.MinEmployees > 0 || r.MinBuzzwordLevel > 1 {
				t.Fatalf("event %s eligible with unmet requirements", ev.ID)
			}
		}
	}

	e.st.Money = 1e9
	e.st.Employees = 100
	e.st.BuzzwordLevel = 100
	if got, want := len(EligibleEvents(e.st)), len(RandomEvents); got != want {
		t.Fatalf("eligible with everything maxed = %d, want all %d", got, want)
	}
}

func TestPickWeightedDeterministic(t *testing.T) {
	events := []RandomEvent{
		{ID: "a", Weight: 1},
		{ID: "b", Weight: 2},
		{ID: "c", Weight: 3},
	}
	cases := []struct {
		roll float64
		want string
	}{
		{0.0, "a"},
		{0.1, "a"},
		{0.17, "b"},
		{0.49, "b"},
		{0.51, "c"},
		{0.99, "c"},
	}
	for _, tc := range cases {
		got := PickWeighted(events, tc.roll)
		if got == nil || got.ID != tc.want {
			t.Fatalf("roll %v picked %v, want %s", tc.roll, got, tc.want)
		}
	}
	if PickWeighted(nil, 0.5) != nil {
		t.Fatalf("empty candidate list must pick nothing")
	}
}

func TestSynergyActivationAndComposition(t *testing.T) {
	e, _ := newTestEngine(t)

	// Only one half of the pair owned: inactive.
	e.st.PurchasedUpgrades = []string{"blockchain"}
	if got := ActiveSynergies(e.st); len(got) != 0 {
		t.Fatalf("synergy active with partial requirements: %v", got)
	}

	e.st.PurchasedUpgrades = []string{"blockchain", "useless_ai"}
	active := ActiveSynergies(e.st)
	if len(active) != 1 || active[0].ID != "blockchain_ai" {
		t.Fatalf("active synergies = %v, want exactly blockchain_ai", active)
	}

	sm := SynergyMultipliers(e.st)
	if sm.ClickPowerMultiplier != 5 || !sm.Chaos || sm.TemporalFluxGain != 50 {
		t.Fatalf("blockchain_ai effect folded wrong: %+v", sm)
	}

	// Adding an unrelated pair composes multiplicatively.
	e.st.PurchasedUpgrades = append(e.st.PurchasedUpgrades, "offshore", "accounting")
	sm = SynergyMultipliers(e.st)
	if sm.MoneyMultiplier != 4 || sm.ClickPowerMultiplier != 5 {
		t.Fatalf("composition wrong: %+v", sm)
	}
	if sm.GlitchMeterBonus != 25 || sm.TemporalFluxGain != 50 {
		t.Fatalf("additive bonuses wrong: %+v", sm)
	}
}

func TestRepeatableOwnershipCountsForSynergies(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.PurchasedUpgrades = []string{"coffee_machine", "energy_drinks"}
	if got := ActiveSynergies(e.st); len(got) != 1 || got[0].ID != "caffeine_overdrive" {
		t.Fatalf("caffeine_overdrive not active: %v", got)
	}

	// Ownership via the repeatable count map also qualifies.
	e.st.PurchasedUpgrades = []string{"union_busting"}
	e.st.UpgradeCount["hire_hr"] = 0
	if got := ActiveSynergies(e.st); len(got) != 0 {
		t.Fatalf("zero count treated as owned: %v", got)
	}
}

func TestPurchaseGrantsFluxOnNewSynergy(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 100000
	e.BuyUpgrade("blockchain")
	if e.Snapshot().TemporalFlux != 0 {
		t.Fatalf("flux granted before synergy complete")
	}
	r := e.BuyUpgrade("useless_ai")
	if !r.Applied || len(r.NewSynergies) != 1 || r.NewSynergies[0] != "blockchain_ai" {
		t.Fatalf("completing purchase result = %+v", r)
	}
	if got := e.Snapshot().TemporalFlux; got != 50 {
		t.Fatalf("flux = %v, want 50", got)
	}
}

func TestAscendPreconditions(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 99_999_999
	if e.CanAscend() {
		t.Fatalf("can ascend below tier cost")
	}
	if r := e.Ascend(); r.Applied {
		t.Fatalf("ascend applied below tier cost")
	}

	e.st.AscensionTier = 4
	e.st.Money = 1e18
	if e.CanAscend() {
		t.Fatalf("can ascend past the terminal tier")
	}
}

func TestAscendCarryover(t *testing.T) {
	e, now := newTestEngine(t)
	e.st.Money = 150_000_000
	e.st.LifetimeEarnings = 150_000_000
	e.st.ClickPower = 40
	e.st.AutoMoney = 500
	e.st.Employees = 12
	e.st.LegalLiability = 300
	e.st.BuzzwordPoints = 25
	e.st.TemporalFlux = 75
	e.st.LifetimeClicks = 4242
	e.st.TotalClicks = 4242
	e.st.UnlockedAchievements = []string{"first_click", "kinda_rich"}
	e.st.PurchasedUpgrades = []string{"blockchain"}
	e.st.PurchasedBPUpgrades = []string{"bp_starting_clicks"}
	e.st.UpgradeCount["hire_intern"] = 5

	*now = now.Add(time.Hour)
	r := e.Ascend()
	if !r.Applied || r.Tier != 1 || r.BuzzwordReward != 100 {
		t.Fatalf("ascend result = %+v", r)
	}

	st := e.Snapshot()
	if st.Money != 0 || st.AutoMoney != 0 || st.Employees != 0 {
		t.Fatalf("reset fields survived: money=%v auto=%v emp=%d", st.Money, st.AutoMoney, st.Employees)
	}
	// bp_starting_clicks carries +10 click power into the new run.
	if st.ClickPower != 11 {
		t.Fatalf("clickPower = %v, want 11 (base 1 + BP 10)", st.ClickPower)
	}
	if st.Electrolytes != 100 || st.RealityStability != 50 {
		t.Fatalf("electrolytes=%v stability=%v", st.Electrolytes, st.RealityStability)
	}
	if st.BuzzwordPoints != 125 {
		t.Fatalf("buzzwordPoints = %v, want 125", st.BuzzwordPoints)
	}
	if st.LifetimeEarnings != 150_000_000 || st.LifetimeClicks != 4242 || st.TemporalFlux != 75 {
		t.Fatalf("carried fields lost: %+v", st)
	}
	if !reflect.DeepEqual(st.UnlockedAchievements, []string{"first_click", "kinda_rich"}) {
		t.Fatalf("achievements lost: %v", st.UnlockedAchievements)
	}
	if len(st.PurchasedUpgrades) != 0 || len(st.UpgradeCount) != 0 {
		t.Fatalf("ordinary upgrades survived reset")
	}
	if !reflect.DeepEqual(st.PurchasedBPUpgrades, []string{"bp_starting_clicks"}) {
		t.Fatalf("prestige purchases lost: %v", st.PurchasedBPUpgrades)
	}
	if st.BankruptcyCount != 1 || st.TotalAscensions != 1 || st.AscensionTier != 1 {
		t.Fatalf("counters wrong: %+v", st)
	}
	if st.TotalClicks != 0 || !st.StartTime.Equal(*now) {
		t.Fatalf("run tracking not reset")
	}
}

func TestBuzzwordShop(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.BuzzwordPoints = 120

	if r := e.BuyBuzzwordUpgrade("bp_money_mult_2"); r.Applied {
		t.Fatalf("bought 300 BP item with 120 BP")
	}
	if r := e.BuyBuzzwordUpgrade("bp_money_mult_1"); !r.Applied || r.Cost != 100 {
		t.Fatalf("bp_money_mult_1 purchase: %+v", r)
	}
	if r := e.BuyBuzzwordUpgrade("bp_money_mult_1"); r.Applied {
		t.Fatalf("BP item bought twice")
	}
	st := e.Snapshot()
	if st.BuzzwordPoints != 20 {
		t.Fatalf("BP balance = %v, want 20", st.BuzzwordPoints)
	}

	bp := e.BPMultipliers()
	if bp.GlobalMoneyMultiplier != 1.1 {
		t.Fatalf("money multiplier = %v, want 1.1", bp.GlobalMoneyMultiplier)
	}

	// The multiplier applies to click income.
	if got := e.Click().Earned; math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("click with bp_money_mult_1 earned %v, want 1.1", got)
	}
}

func TestGlitchRollGates(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.GlitchMeter = 50
	e.st.AscensionTier = 4 // glitchChance 1.0
	if r := e.RollGlitch(); r.Fired {
		t.Fatalf("glitch fired below full meter")
	}

	e.st.GlitchMeter = 100
	e.st.AscensionTier = 0 // glitchChance 0
	if r := e.RollGlitch(); r.Fired {
		t.Fatalf("glitch fired at tier 0")
	}
}

func TestGlitchTriggerResetsMeter(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.GlitchMeter = 100
	e.st.AscensionTier = 4
	e.st.Money = 1000

	r := e.RollGlitch()
	if !r.Fired {
		t.Fatalf("glitch did not fire with meter=100 at chance 1.0")
	}
	st := e.Snapshot()
	if st.GlitchMeter != 0 {
		t.Fatalf("meter = %v after glitch, want 0", st.GlitchMeter)
	}
	if st.RecentGlitchCount != 1 {
		t.Fatalf("recentGlitchCount = %v, want 1", st.RecentGlitchCount)
	}
	if len(st.ActiveGlitches) != 1 || st.ActiveGlitches[0] != r.ID {
		t.Fatalf("active glitches = %v, want [%s]", st.ActiveGlitches, r.ID)
	}
	if _, ok := st.GlitchExpiry[r.ID]; !ok {
		t.Fatalf("no expiry recorded for %s", r.ID)
	}
}

func TestGlitchMoneyDiminishingReturns(t *testing.T) {
	g := GlitchByID("money_overflow")
	if g == nil {
		t.Fatalf("money_overflow missing")
	}

	run := func(recent float64) float64 {
		e, _ := newTestEngine(t)
		e.st.Money = 1000
		e.st.RecentGlitchCount = recent
		before := e.st.Money
		ch := g.Effect(e.st)
		factor := math.Pow(0.8, recent)
		scaled := before + (*ch.Money-before)*factor
		ch.Money = &scaled
		e.st.apply(ch)
		return e.st.Money - before
	}

	fresh := run(0)
	repeat := run(3)
	if fresh != 1000 {
		t.Fatalf("fresh overflow gain = %v, want 1000", fresh)
	}
	want := 1000 * math.Pow(0.8, 3)
	if math.Abs(repeat-want) > 1e-9 {
		t.Fatalf("repeat gain = %v, want %v", repeat, want)
	}
}

func TestGlitchExpiry(t *testing.T) {
	e, now := newTestEngine(t)
	e.st.GlitchMeter = 100
	e.st.AscensionTier = 4
	r := e.RollGlitch()
	if !r.Fired {
		t.Fatalf("glitch did not fire")
	}

	*now = now.Add(2 * time.Minute)
	e.Tick()
	st := e.Snapshot()
	if len(st.ActiveGlitches) != 0 || len(st.GlitchExpiry) != 0 {
		t.Fatalf("glitch not expired: %v %v", st.ActiveGlitches, st.GlitchExpiry)
	}
}

func TestAchievementsUnlockOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Click()

	first := e.CheckAchievements()
	var ids []string
	for _, a := range first {
		ids = append(ids, a.ID)
	}
	if len(ids) == 0 || ids[0] != "first_click" {
		t.Fatalf("newly unlocked = %v, want first_click first", ids)
	}
	if again := e.CheckAchievements(); len(again) != 0 {
		t.Fatalf("achievements reported twice: %v", again)
	}
	st := e.Snapshot()
	if !st.hasAchievement("first_click") {
		t.Fatalf("unlock not persisted")
	}
}

func TestAchievementTableOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.TotalClicks = 1
	e.st.LifetimeClicks = 150
	e.st.Employees = 1

	got := e.CheckAchievements()
	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	want := []string{"first_click", "clicker", "first_hire"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("unlock order = %v, want %v", ids, want)
	}
}

func TestMonotonicityAndClamps(t *testing.T) {
	e, now := newTestEngine(t)
	e.rng = rand.New(rand.NewSource(7))
	e.st.Money = 500

	prevEarnings := e.st.LifetimeEarnings
	prevClicks := e.st.LifetimeClicks
	for i := 0; i < 500; i++ {
		*now = now.Add(123 * time.Millisecond)
		switch i % 5 {
		case 0, 1:
			e.Click()
		case 2:
			e.Tick()
		case 3:
			e.RollEvent()
		case 4:
			e.BuyUpgrade("hire_intern")
		}
		st := e.Snapshot()
		if st.LifetimeEarnings < prevEarnings {
			t.Fatalf("lifetimeEarnings decreased at step %d", i)
		}
		if st.LifetimeClicks < prevClicks {
			t.Fatalf("lifetimeClicks decreased at step %d", i)
		}
		for name, v := range map[string]float64{
			"synergy":          st.Synergy,
			"electrolytes":     st.Electrolytes,
			"realityStability": st.RealityStability,
			"glitchMeter":      st.GlitchMeter,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s out of range at step %d: %v", name, i, v)
			}
		}
		if st.Money < 0 {
			t.Fatalf("money negative at step %d", i)
		}
		prevEarnings = st.LifetimeEarnings
		prevClicks = st.LifetimeClicks
	}
}

func TestRollEventRespectsEligibility(t *testing.T) {
	e, _ := newTestEngine(t)
	e.rng = rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		eligible := map[string]bool{}
		for _, ev := range EligibleEvents(e.st) {
			eligible[ev.ID] = true
		}
		if r := e.RollEvent(); r.Fired && !eligible[r.ID] {
			t.Fatalf("ineligible event fired: %s", r.ID)
		}
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	e, now := newTestEngine(t)
	e.st.Money = 12345.678
	e.st.PurchasedUpgrades = []string{"blockchain", "ipo"}
	e.st.UpgradeCount["hire_intern"] = 7
	e.st.PurchasedBPUpgrades = []string{"bp_money_mult_1"}
	e.st.UnlockedAchievements = []string{"first_click"}
	e.st.ActiveGlitches = []string{"time_skip"}
	e.st.GlitchExpiry["time_skip"] = now.Add(5 * time.Second)
	e.st.RecentGlitchCount = 1.5
	e.st.LegalLiability = -42
	e.st.LastClickTime = *now

	raw, err := json.Marshal(e.st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(e.st, &back) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", &back, e.st)
	}
}

func TestRestoredStateKeepsWorking(t *testing.T) {
	e, _ := newTestEngine(t)
	e.st.Money = 100
	raw, err := json.Marshal(e.st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	e2 := NewEngineFromState(&back, nil)
	if r := e2.BuyUpgrade("better_fingers"); !r.Applied {
		t.Fatalf("restored engine rejected affordable purchase")
	}
}
