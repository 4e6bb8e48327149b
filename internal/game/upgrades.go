package game

import "math"

// Special marks an upgrade whose purchase does something beyond the additive
// effect deltas. The purchase path dispatches on this tag only.
type Special int

const (
	SpecialNone Special = iota
	// SpecialRefillElectrolytes restores electrolytes to 100 on purchase.
	SpecialRefillElectrolytes
	// SpecialSlowElectrolyteDrain halves the passive electrolyte drain.
	SpecialSlowElectrolyteDrain
)

// UpgradeEffect is a bundle of additive deltas applied on purchase.
// Zero fields mean "no change".
type UpgradeEffect struct {
	ClickPower     float64
	AutoMoney      float64
	Employees      int
	Synergy        float64
	BuzzwordLevel  int
	LegalLiability float64
	MeetingTime    float64
	InstantMoney   float64
}

// UpgradeRequires gates visibility of an upgrade. Zero fields are unchecked.
type UpgradeRequires struct {
	Money           float64
	Employees       int
	BuzzwordLevel   int
	BankruptcyCount int
	Achievements    []string
}

type Upgrade struct {
	ID          string
	Name        string
	Description string
	BaseCost    float64
	// CostMultiplier > 0 marks the upgrade repeatable with a geometric
	// cost curve; 0 means one-shot at BaseCost.
	CostMultiplier float64
	Tier           int
	Icon           string
	Requires       *UpgradeRequires
	Effect         UpgradeEffect
	Special        Special
}

// Upgrades is the master catalog, ordered by tier then cost.
var Upgrades = []Upgrade{
	// Tier 1: intern life
	{
		ID: "better_fingers", Name: "Better Fingers",
		Description:    "Train your clicking finger. Results may vary.",
		BaseCost:       50, CostMultiplier: 1.2, Tier: 1, Icon: "👆",
		Effect: UpgradeEffect{ClickPower: 1},
	},
	{
		ID: "hire_intern", Name: "Hire Intern",
		Description:    "Unpaid labor is the backbone of capitalism!",
		BaseCost:       100, CostMultiplier: 1.15, Tier: 1, Icon: "🧑‍💼",
		Effect: UpgradeEffect{Employees: 1, AutoMoney: 1},
	},
	{
		ID: "coffee_machine", Name: "Coffee Machine",
		Description: "Keeps employees barely functional.",
		BaseCost:    150, Tier: 1, Icon: "☕",
		Effect: UpgradeEffect{AutoMoney: 2, Synergy: 5},
	},
	{
		ID: "more_electrolytes", Name: "More Electrolytes",
		Description:    "It's what plants crave! Refills to 100%.",
		BaseCost:       150, CostMultiplier: 1.3, Tier: 1, Icon: "⚡",
		Special: SpecialRefillElectrolytes,
	},

	// Tier 2: middle management
	{
		ID: "buy_synergy", Name: "Buy Synergy",
		Description: "Purchase intangible corporate buzzwords.",
		BaseCost:    200, Tier: 2, Icon: "🔥",
		Effect: UpgradeEffect{ClickPower: 5, BuzzwordLevel: 1},
	},
	{
		ID: "hire_manager", Name: "Hire Manager",
		Description:    "Someone to manage the interns managing themselves.",
		BaseCost:       500, CostMultiplier: 1.18, Tier: 2, Icon: "👔",
		Effect: UpgradeEffect{Employees: 1, AutoMoney: 10},
	},
	{
		ID: "ergonomic_chair", Name: "Ergonomic Chair",
		Description: "$800 chair to avoid $200 standing desk.",
		BaseCost:    750, Tier: 2, Icon: "🪑",
		Effect: UpgradeEffect{AutoMoney: 15, Synergy: 10},
	},
	{
		ID: "standing_desk", Name: "Standing Desk",
		Description: "Suffering, but vertically.",
		BaseCost:    1000, Tier: 2, Icon: "🖥️",
		Effect: UpgradeEffect{ClickPower: 10, AutoMoney: 20},
	},
	{
		ID: "whiteboard", Name: "Whiteboard",
		Description: `For drawing circles and calling them "synergy".`,
		BaseCost:    1200, Tier: 2, Icon: "📋",
		Effect: UpgradeEffect{BuzzwordLevel: 2, Synergy: 20},
	},

	// Tier 3: corporate elite
	{
		ID: "hire_ceo", Name: "Hire CEO",
		Description: "Pays themselves 400x the average worker. Worth it?",
		BaseCost:    2500, Tier: 3, Icon: "👑",
		Effect: UpgradeEffect{AutoMoney: 50, LegalLiability: 10},
	},
	{
		ID: "open_office", Name: "Open Office Layout",
		Description: "Remove all privacy. Productivity definitely increases.",
		BaseCost:    3000, Tier: 3, Icon: "🏢",
		Effect: UpgradeEffect{AutoMoney: 75, Synergy: -20},
	},
	{
		ID: "team_building", Name: "Mandatory Team Building",
		Description: "Trust falls and awkward ice breakers!",
		BaseCost:    5000, Tier: 3, Icon: "🎯",
		Effect: UpgradeEffect{Synergy: 50, MeetingTime: 10},
	},
	{
		ID: "blockchain", Name: "BLOCKCHAIN",
		Description: "We have no idea what it does but investors love it!",
		BaseCost:    5000, Tier: 3, Icon: "⛓️",
		Effect: UpgradeEffect{InstantMoney: 10000, BuzzwordLevel: 3},
	},
	{
		ID: "ping_pong", Name: "Ping Pong Table",
		Description: "Startup culture! (No one uses it)",
		BaseCost:    6000, Tier: 3, Icon: "🏓",
		Effect: UpgradeEffect{Synergy: 30, AutoMoney: 100},
	},
	{
		ID: "flex_time", Name: "Flex Time Policy",
		Description: "Work whenever you want! (Still 60 hours/week)",
		BaseCost:    8000, Tier: 3, Icon: "⏰",
		Effect: UpgradeEffect{AutoMoney: 150, Synergy: 40},
	},

	// Tier 3 growth stage
	{
		ID: "hire_hr", Name: "Hire HR Department",
		Description: "Protecting the company FROM employees since forever",
		BaseCost:    12000, Tier: 3, Icon: "👨‍💼",
		Effect: UpgradeEffect{Employees: 3, AutoMoney: 80, LegalLiability: -20},
	},
	{
		ID: "energy_drinks", Name: "Energy Drink Supply",
		Description: "Coffee is for quitters. Electrolytes drain 50% slower.",
		BaseCost:    15000, Tier: 3, Icon: "🥤",
		Effect:  UpgradeEffect{AutoMoney: 100},
		Special: SpecialSlowElectrolyteDrain,
	},
	{
		ID: "hire_sales", Name: "Hire Sales Team",
		Description:    "Sell things people don't need! Perfect capitalism.",
		BaseCost:       18000, CostMultiplier: 1.25, Tier: 3, Icon: "📞",
		Effect: UpgradeEffect{Employees: 5, AutoMoney: 120, ClickPower: 15},
	},
	{
		ID: "hire_marketers", Name: "Hire Marketing Team",
		Description:    "Spend money to make money to spend on marketing!",
		BaseCost:       22000, CostMultiplier: 1.22, Tier: 3, Icon: "📢",
		Effect: UpgradeEffect{Employees: 4, AutoMoney: 140, BuzzwordLevel: 3},
	},
	{
		ID: "consultant", Name: "Hire Expensive Consultant",
		Description: "$10k/hour to tell you what you already know",
		BaseCost:    28000, Tier: 3, Icon: "🎩",
		Effect: UpgradeEffect{AutoMoney: 180, MeetingTime: 20, Synergy: 50},
	},
	{
		ID: "offshore", Name: "Offshore Tax Haven",
		Description: "Taxes are for poor people!",
		BaseCost:    35000, Tier: 3, Icon: "🏝️",
		Effect: UpgradeEffect{AutoMoney: 200, LegalLiability: 150},
	},
	{
		ID: "accounting", Name: "Creative Accounting",
		Description: "The numbers mean whatever we want them to mean",
		BaseCost:    42000, Tier: 3, Icon: "📊",
		Effect: UpgradeEffect{AutoMoney: 220, LegalLiability: 80, InstantMoney: 8000},
	},
	{
		ID: "vr_office", Name: "VR Office Space",
		Description: "Like a real office, but with motion sickness!",
		BaseCost:    48000, Tier: 3, Icon: "🥽",
		Effect: UpgradeEffect{AutoMoney: 250, BuzzwordLevel: 4, MeetingTime: 15},
	},
	{
		ID: "synergy_team", Name: "Dedicated Synergy Team",
		Description:    "Their only job is to create synergy (whatever that means)",
		BaseCost:       55000, CostMultiplier: 1.28, Tier: 3, Icon: "🔥",
		Effect: UpgradeEffect{Employees: 6, AutoMoney: 280, Synergy: 60, ClickPower: 20},
	},
	{
		ID: "meeting_room", Name: "Executive Meeting Rooms",
		Description: "Where decisions go to die",
		BaseCost:    60000, Tier: 3, Icon: "🚪",
		Effect: UpgradeEffect{AutoMoney: 300, MeetingTime: 30, Synergy: -15},
	},
	{
		ID: "stock_manipulation", Name: "Stock Manipulation",
		Description: "It's not illegal if you don't get caught!",
		BaseCost:    65000, Tier: 3, Icon: "📈",
		Effect: UpgradeEffect{AutoMoney: 350, LegalLiability: 200, InstantMoney: 12000},
	},
	{
		ID: "insider_trading", Name: "Insider Trading Division",
		Description: "Using information before it's public? That's just smart!",
		BaseCost:    70000, Tier: 3, Icon: "💼",
		Effect: UpgradeEffect{AutoMoney: 400, LegalLiability: 250, ClickPower: 30},
	},
	{
		ID: "automation", Name: "Automate Everything",
		Description: "Replace humans with robots. What could go wrong?",
		BaseCost:    75000, Tier: 3, Icon: "🤖",
		Effect: UpgradeEffect{AutoMoney: 450, Employees: -10, ClickPower: 40},
	},
	{
		ID: "golden_parachute", Name: "Golden Parachute Clause",
		Description: "Get paid millions even if you fail spectacularly",
		BaseCost:    80000, Tier: 3, Icon: "🪂",
		Effect: UpgradeEffect{AutoMoney: 500, LegalLiability: -50, InstantMoney: 15000},
	},
	{
		ID: "data_mining", Name: "User Data Mining",
		Description: "Your privacy is our profit!",
		BaseCost:    90000, Tier: 3, Icon: "⛏️",
		Effect: UpgradeEffect{AutoMoney: 600, LegalLiability: 300, ClickPower: 50},
	},

	// Tier 4: unhinged capitalism
	{
		ID: "useless_ai", Name: "AI That Does Nothing",
		Description: `"Powered by AI" sounds good in press releases.`,
		BaseCost:    10000, Tier: 4, Icon: "🤖",
		Effect: UpgradeEffect{BuzzwordLevel: 4, AutoMoney: 200, LegalLiability: 20},
	},
	{
		ID: "metaverse", Name: "Metaverse Office",
		Description: "Like Zoom, but worse and more expensive!",
		BaseCost:    25000, Tier: 4, Icon: "🥽",
		Effect: UpgradeEffect{AutoMoney: 500, BuzzwordLevel: 5, MeetingTime: 50},
	},
	{
		ID: "nft_collection", Name: "Corporate NFT Collection",
		Description: "Right-click save THIS, nerds! (Please buy them)",
		BaseCost:    50000, Tier: 4, Icon: "🖼️",
		Effect: UpgradeEffect{InstantMoney: 25000, LegalLiability: 50},
	},
	{
		ID: "acquire_competitor", Name: "Acquire Competitor",
		Description: "Eliminate competition through capitalism!",
		BaseCost:    100000, Tier: 4, Icon: "💰",
		Effect: UpgradeEffect{AutoMoney: 1000, Employees: 50, LegalLiability: 100},
	},
	{
		ID: "ipo", Name: "Go Public (IPO)",
		Description: "Sell shares to idiots on the internet.",
		BaseCost:    250000, Tier: 4, Icon: "📈",
		Effect: UpgradeEffect{InstantMoney: 500000, BuzzwordLevel: 10, LegalLiability: 200},
	},
	{
		ID: "lobbying", Name: "Lobbying Division",
		Description: "Laws are just suggestions when you have money.",
		BaseCost:    300000, Tier: 4, Icon: "💼",
		Effect: UpgradeEffect{AutoMoney: 2000, LegalLiability: -100},
	},

	// Tier 5: endgame absurdity
	{
		ID: "meme_stock", Name: "Become Meme Stock",
		Description: "r/wallstreetbets will definitely make good decisions.",
		BaseCost:    500000, Tier: 5, Icon: "🚀",
		Requires:    &UpgradeRequires{Achievements: []string{"went_public"}},
		Effect:      UpgradeEffect{AutoMoney: 5000, ClickPower: 100, BuzzwordLevel: 15},
	},
	{
		ID: "space_launch", Name: "Launch to Space",
		Description: "Tax avoidance, but make it look cool.",
		BaseCost:    1000000, Tier: 5, Icon: "🛸",
		Effect: UpgradeEffect{InstantMoney: 2000000, BuzzwordLevel: 20, LegalLiability: 500},
	},
	{
		ID: "union_busting", Name: "Unionbusting Division",
		Description: "Worker rights? Not on MY watch!",
		BaseCost:    2500000, Tier: 5, Icon: "⚔️",
		Effect: UpgradeEffect{AutoMoney: 10000, LegalLiability: 1000, Synergy: -100},
	},
	{
		ID: "rebrand", Name: `Rebrand as "Tech Company"`,
		Description: "We sell sandwiches, but with an app!",
		BaseCost:    5000000, Tier: 5, Icon: "✨",
		Effect: UpgradeEffect{AutoMoney: 25000, ClickPower: 500, BuzzwordLevel: 30},
	},
	{
		ID: "regulatory_capture", Name: "Regulatory Capture",
		Description: "Why follow laws when you can write them?",
		BaseCost:    10000000, Tier: 5, Icon: "⚖️",
		Effect: UpgradeEffect{AutoMoney: 50000, LegalLiability: -9999, BuzzwordLevel: 50},
	},
	{
		ID: "too_big_fail", Name: "Too Big To Fail Status",
		Description: "Government bailout guaranteed!",
		BaseCost:    25000000, Tier: 5, Icon: "🏛️",
		Requires:    &UpgradeRequires{BankruptcyCount: 1},
		Effect:      UpgradeEffect{AutoMoney: 100000, InstantMoney: 50000000, LegalLiability: -9999},
	},
}

// UpgradeByID returns the catalog entry, or nil for an unknown id.
func UpgradeByID(id string) *Upgrade {
	for i := range Upgrades {
		if Upgrades[i].ID == id {
			return &Upgrades[i]
		}
	}
	return nil
}

// Repeatable reports whether an upgrade can be bought more than once.
func (u *Upgrade) Repeatable() bool { return u.CostMultiplier > 0 }

// UpgradeCost returns the price of the next purchase given how many copies
// are already owned. One-shot upgrades always cost BaseCost.
func UpgradeCost(u *Upgrade, purchaseCount int) float64 {
	if !u.Repeatable() {
		return u.BaseCost
	}
	return math.Floor(u.BaseCost * math.Pow(u.CostMultiplier, float64(purchaseCount)))
}

// AvailableUpgrades filters the catalog to entries visible for the given
// state: unmet requirements and already-owned one-shots are hidden.
// Affordability is not checked here.
func AvailableUpgrades(s *State) []Upgrade {
	out := make([]Upgrade, 0, len(Upgrades))
	for _, u := range Upgrades {
		if !u.Repeatable() && s.Owns(u.ID) {
			continue
		}
		if r := u.Requires; r != nil {
			if r.Money > 0 && s.Money < r.Money {
				continue
			}
			if r.Employees > 0 && s.Employees < r.Employees {
				continue
			}
			if r.BuzzwordLevel > 0 && s.BuzzwordLevel < r.BuzzwordLevel {
				continue
			}
			if r.BankruptcyCount > 0 && s.BankruptcyCount < r.BankruptcyCount {
				continue
			}
			missing := false
			for _, a := range r.Achievements {
				if !s.hasAchievement(a) {
					missing = true
					break
				}
			}
			if missing {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}
