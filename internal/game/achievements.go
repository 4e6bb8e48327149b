package game

import "time"

// Achievement is a named predicate over state. Check must be pure; the
// engine unlocks each achievement at most once, in table order.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Hidden      bool
	Check       func(s *State, now time.Time) bool
}

var Achievements = []Achievement{
	// Basic
	{
		ID: "first_click", Name: "First Click", Icon: "👆",
		Description: "You clicked the button! You're doing great!",
		Check:       func(s *State, _ time.Time) bool { return s.TotalClicks > 0 },
	},
	{
		ID: "kinda_rich", Name: "Kinda Rich", Icon: "💵",
		Description: "Accumulated $10,000",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeEarnings >= 10000 },
	},
	{
		ID: "actually_rich", Name: "Actually Rich", Icon: "💰",
		Description: "Accumulated $100,000",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeEarnings >= 100000 },
	},
	{
		ID: "absurdly_rich", Name: "Absurdly Rich", Icon: "🤑",
		Description: "Accumulated $1,000,000",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeEarnings >= 1000000 },
	},
	{
		ID: "bezos_level", Name: "Bezos Level", Icon: "🚀",
		Description: "Accumulated $10,000,000",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeEarnings >= 10000000 },
	},

	// Clicking
	{
		ID: "clicker", Name: "Clicker", Icon: "👆",
		Description: "Clicked 100 times",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeClicks >= 100 },
	},
	{
		ID: "dedicated_clicker", Name: "Dedicated Clicker", Icon: "🖱️",
		Description: "Clicked 1,000 times",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeClicks >= 1000 },
	},
	{
		ID: "literally_insane", Name: "Literally Insane", Icon: "🤪",
		Description: "Clicked 10,000 times. Seek help.",
		Check:       func(s *State, _ time.Time) bool { return s.LifetimeClicks >= 10000 },
	},

	// Employees
	{
		ID: "first_hire", Name: "First Hire", Icon: "🧑‍💼",
		Description: "Hired your first employee (sucker)",
		Check:       func(s *State, _ time.Time) bool { return s.Employees >= 1 },
	},
	{
		ID: "small_team", Name: "Small Team", Icon: "👥",
		Description: "10 employees exploited",
		Check:       func(s *State, _ time.Time) bool { return s.Employees >= 10 },
	},
	{
		ID: "corporation", Name: "Corporation", Icon: "🏢",
		Description: "50 employees under your thumb",
		Check:       func(s *State, _ time.Time) bool { return s.Employees >= 50 },
	},
	{
		ID: "megacorp", Name: "Megacorp", Icon: "🏙️",
		Description: "100 employees. Congrats on the power trip!",
		Check:       func(s *State, _ time.Time) bool { return s.Employees >= 100 },
	},

	// Upgrades
	{
		ID: "spender", Name: "Spender", Icon: "🛒",
		Description: "Purchased 5 upgrades",
		Check:       func(s *State, _ time.Time) bool { return len(s.PurchasedUpgrades) >= 5 },
	},
	{
		ID: "big_spender", Name: "Big Spender", Icon: "💳",
		Description: "Purchased 15 upgrades",
		Check:       func(s *State, _ time.Time) bool { return len(s.PurchasedUpgrades) >= 15 },
	},
	{
		ID: "bought_everything", Name: "Bought Everything", Icon: "🛍️",
		Description: "Purchased all available upgrades",
		Check:       func(s *State, _ time.Time) bool { return len(s.PurchasedUpgrades) >= 25 },
	},

	// Buzzwords
	{
		ID: "corporate_speak", Name: "Corporate Speak", Icon: "💬",
		Description: "Reached Buzzword Level 10",
		Check:       func(s *State, _ time.Time) bool { return s.BuzzwordLevel >= 10 },
	},
	{
		ID: "jargon_master", Name: "Jargon Master", Icon: "🎯",
		Description: "Reached Buzzword Level 25",
		Check:       func(s *State, _ time.Time) bool { return s.BuzzwordLevel >= 25 },
	},
	{
		ID: "peak_nonsense", Name: "Peak Nonsense", Icon: "🤡",
		Description: "Reached Buzzword Level 50",
		Check:       func(s *State, _ time.Time) bool { return s.BuzzwordLevel >= 50 },
	},

	// Specific purchases
	{
		ID: "blockchain_master", Name: "Blockchain Master", Icon: "⛓️",
		Description: "Bought BLOCKCHAIN without knowing what it does",
		Check:       func(s *State, _ time.Time) bool { return s.Owns("blockchain") },
	},
	{
		ID: "went_public", Name: "Went Public", Icon: "📈",
		Description: "Successfully IPO'd! Welcome to hell.",
		Check:       func(s *State, _ time.Time) bool { return s.Owns("ipo") },
	},
	{
		ID: "too_big_fail", Name: "Too Big To Fail", Icon: "🏛️",
		Description: "Achieved bailout immunity status",
		Check:       func(s *State, _ time.Time) bool { return s.Owns("too_big_fail") },
	},

	// Dark humor
	{
		ID: "wage_theft_pro", Name: "Wage Theft Pro", Icon: "💸",
		Description: "Hired 10+ unpaid interns",
		Check:       func(s *State, _ time.Time) bool { return s.UpgradeCount["hire_intern"] >= 10 },
	},
	{
		ID: "union_buster", Name: "Union Buster", Icon: "⚔️", Hidden: true,
		Description: "Bought the Unionbusting Division",
		Check:       func(s *State, _ time.Time) bool { return s.Owns("union_busting") },
	},
	{
		ID: "tax_avoider", Name: "Tax Avoider", Icon: "💰",
		Description: "Made money while losing money (how?)",
		Check:       func(s *State, _ time.Time) bool { return s.Money > 100000 && s.LegalLiability > 500 },
	},
	{
		ID: "sec_called", Name: "SEC Called", Icon: "⚖️",
		Description: "Accumulated max legal liability",
		Check:       func(s *State, _ time.Time) bool { return s.LegalLiability >= 1000 },
	},

	// Speed
	{
		ID: "speedrunner", Name: "Speedrunner", Icon: "⚡",
		Description: "$10,000 in first 2 minutes",
		Check: func(s *State, now time.Time) bool {
			return s.LifetimeEarnings >= 10000 && now.Sub(s.StartTime) < 2*time.Minute
		},
	},
	{
		ID: "day_trader", Name: "Day Trader", Icon: "📊",
		Description: "$100,000 in first 10 minutes",
		Check: func(s *State, now time.Time) bool {
			return s.LifetimeEarnings >= 100000 && now.Sub(s.StartTime) < 10*time.Minute
		},
	},

	// Prestige
	{
		ID: "bankruptcy_filing", Name: "Chapter 11", Icon: "📄",
		Description: "Filed bankruptcy for the first time",
		Check:       func(s *State, _ time.Time) bool { return s.BankruptcyCount >= 1 },
	},
	{
		ID: "serial_bankrupter", Name: "Serial Bankrupter", Icon: "🔄",
		Description: "Filed bankruptcy 5 times. It's a lifestyle.",
		Check:       func(s *State, _ time.Time) bool { return s.BankruptcyCount >= 5 },
	},
	{
		ID: "eat_the_rich", Name: "Eat The Rich", Icon: "🍽️",
		Description: "Filed bankruptcy 10 times",
		Check:       func(s *State, _ time.Time) bool { return s.BankruptcyCount >= 10 },
	},

	// Silly
	{
		ID: "quiet_quitting_badge", Name: "Quiet Quitting", Icon: "🤫", Hidden: true,
		Description: "Didn't click for 5 minutes straight",
		Check: func(s *State, now time.Time) bool {
			return s.TotalClicks > 0 && now.Sub(s.LastClickTime) >= 5*time.Minute
		},
	},
	{
		ID: "workaholic", Name: "Workaholic", Icon: "💼",
		Description: "Played for 30 minutes straight",
		Check: func(s *State, now time.Time) bool {
			return now.Sub(s.StartTime) >= 30*time.Minute
		},
	},
	{
		ID: "no_life", Name: "No Life", Icon: "🌱",
		Description: "Played for 1 hour straight. Touch grass.",
		Check: func(s *State, now time.Time) bool {
			return now.Sub(s.StartTime) >= time.Hour
		},
	},
}

// AchievementByID returns the catalog entry, or nil for an unknown id.
func AchievementByID(id string) *Achievement {
	for i := range Achievements {
		if Achievements[i].ID == id {
			return &Achievements[i]
		}
	}
	return nil
}
