package game

import "math"

// EventRequires gates event eligibility. Zero fields are unchecked.
type EventRequires struct {
	MinMoney         float64
	MinEmployees     int
	MinBuzzwordLevel int
}

// RandomEvent is a weighted random occurrence. Effect computes a sparse
// absolute update from the current state; roll is a uniform [0,1) draw for
// the handful of events with randomized outcomes.
type RandomEvent struct {
	ID       string
	Text     string
	Icon     string
	Weight   float64
	Sound    string
	Requires *EventRequires
	Effect   func(s *State, roll float64) Change
}

// RandomEvents is the master event table. Order matters for the weighted
// linear scan, so new entries go at the end of their section.
var RandomEvents = []RandomEvent{
	// Positive
	{
		ID: "ceo_nap", Text: "🎉 CEO took a nap! Productivity +1000%", Icon: "💤",
		Weight: 4, Sound: "good",
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money + 500)} },
	},
	{
		ID: "free_burger", Text: "🍔 Free burger day! Morale boosted", Icon: "🍔",
		Weight: 5, Sound: "good",
		Effect: func(_ *State, _ float64) Change { return Change{Synergy: num(100)} },
	},
	{
		ID: "stock_surge", Text: "📈 Stock price surged for no reason!", Icon: "📈",
		Weight: 3, Sound: "good", Requires: &EventRequires{MinMoney: 10000},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money + math.Floor(s.Money*0.1))}
		},
	},
	{
		ID: "tax_loophole", Text: "💸 Found a tax loophole! Free money!", Icon: "💸",
		Weight: 2, Sound: "good", Requires: &EventRequires{MinMoney: 50000},
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money + 5000)} },
	},
	{
		ID: "vc_funding", Text: "💰 VCs threw money at you for no reason", Icon: "💰",
		Weight: 2, Sound: "good", Requires: &EventRequires{MinBuzzwordLevel: 5},
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money + 10000)} },
	},
	{
		ID: "competitor_bankrupt", Text: "🎊 Competitor went bankrupt! Their loss is your gain", Icon: "🎊",
		Weight: 3, Sound: "good", Requires: &EventRequires{MinEmployees: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money + 2000), AutoMoney: num(s.AutoMoney + 50)}
		},
	},
	{
		ID: "viral_tweet", Text: "🐦 CEO tweet went viral! Stock up 420%", Icon: "🐦",
		Weight: 2, Sound: "good", Requires: &EventRequires{MinMoney: 100000},
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money + 25000)} },
	},
	{
		ID: "govt_subsidy", Text: "🏛️ Government subsidy acquired! (Socialism for the rich)", Icon: "🏛️",
		Weight: 2, Sound: "good", Requires: &EventRequires{MinEmployees: 50},
		Effect: func(_ *State, _ float64) Change { return Change{Money: num(50000)} },
	},

	// Negative
	{
		ID: "ai_sentient", Text: "🤖 AI became sentient! Immediately resigned", Icon: "🤖",
		Weight: 5, Sound: "bad",
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money - 100)} },
	},
	{
		ID: "electrolyte_shortage", Text: "⚡ Electrolyte shortage! Productivity tanked", Icon: "⚡",
		Weight: 6, Sound: "bad",
		Effect: func(_ *State, _ float64) Change { return Change{Electrolytes: num(20)} },
	},
	{
		ID: "ceo_yacht", Text: "🛥️ CEO bought another yacht. Morale -50%", Icon: "🛥️",
		Weight: 4, Sound: "bad", Requires: &EventRequires{MinEmployees: 20},
		Effect: func(s *State, _ float64) Change { return Change{Synergy: num(s.Synergy - 50)} },
	},
	{
		ID: "pizza_party", Text: "🍕 Pizza party instead of raises! Everyone quit", Icon: "🍕",
		Weight: 5, Sound: "bad", Requires: &EventRequires{MinEmployees: 5},
		Effect: func(s *State, _ float64) Change {
			return Change{Employees: cnt(s.Employees - 2), Synergy: num(s.Synergy - 30)}
		},
	},
	{
		ID: "layoffs_announced", Text: "📉 Layoffs announced! Stock price SOARS 🚀", Icon: "📉",
		Weight: 4, Sound: "chaotic", Requires: &EventRequires{MinEmployees: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{
				Employees:      cnt(s.Employees - 5),
				Money:          num(s.Money + 1000),
				LegalLiability: num(s.LegalLiability + 50),
			}
		},
	},
	{
		ID: "sec_investigation", Text: "⚖️ SEC investigation started... nevermind, lobbying worked", Icon: "⚖️",
		Weight: 3, Sound: "chaotic", Requires: &EventRequires{MinMoney: 100000},
		Effect: func(s *State, _ float64) Change {
			return Change{
				Money:          num(s.Money - 25000),
				LegalLiability: num(max(0, s.LegalLiability-100)),
			}
		},
	},
	{
		ID: "intern_discovered", Text: "🧑‍💼 Intern discovered you don't pay them. Awkward.", Icon: "🧑‍💼",
		Weight: 5, Sound: "bad", Requires: &EventRequires{MinEmployees: 1},
		Effect: func(s *State, _ float64) Change {
			return Change{LegalLiability: num(s.LegalLiability + 25)}
		},
	},
	{
		ID: "market_crash", Text: "💥 Market crash! Everyone panic sold", Icon: "💥",
		Weight: 3, Sound: "bad", Requires: &EventRequires{MinMoney: 50000},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(math.Floor(s.Money * 0.8))}
		},
	},
	{
		ID: "pr_disaster", Text: "😰 Tried to be evil, accidentally did good. PR disaster!", Icon: "😰",
		Weight: 4, Sound: "chaotic",
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 500), Synergy: num(s.Synergy + 20)}
		},
	},
	{
		ID: "union_forming", Text: "✊ Workers are forming a union! Quick, hire consultants!", Icon: "✊",
		Weight: 3, Sound: "bad", Requires: &EventRequires{MinEmployees: 20},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 5000), LegalLiability: num(s.LegalLiability + 100)}
		},
	},

	// Neutral / chaotic
	{
		ID: "nuclear_false_alarm", Text: "☢️ Nuclear launch detected (false alarm)", Icon: "☢️",
		Weight: 6, Sound: "neutral",
		Effect: func(_ *State, _ float64) Change { return Change{} },
	},
	{
		ID: "stock_uncertainty", Text: "📊 Stock market went up (or down idk)", Icon: "📊",
		Weight: 7, Sound: "neutral",
		Effect: func(s *State, roll float64) Change {
			return Change{Money: num(s.Money + math.Floor((roll-0.5)*2000))}
		},
	},
	{
		ID: "interpretive_dance", Text: "💃 Employee quit via interpretive dance", Icon: "💃",
		Weight: 5, Sound: "chaotic", Requires: &EventRequires{MinEmployees: 3},
		Effect: func(s *State, _ float64) Change {
			return Change{Employees: cnt(s.Employees - 1), Synergy: num(s.Synergy + 10)}
		},
	},
	{
		ID: "zoom_email", Text: "📧 Zoom meeting could've been an email (time wasted)", Icon: "📧",
		Weight: 7, Sound: "bad",
		Effect: func(s *State, _ float64) Change { return Change{MeetingTime: num(s.MeetingTime + 5)} },
	},
	{
		ID: "hr_investigation", Text: "🔍 HR investigated themselves, found no wrongdoing", Icon: "🔍",
		Weight: 6, Sound: "neutral",
		Effect: func(s *State, _ float64) Change {
			return Change{LegalLiability: num(s.LegalLiability + 10)}
		},
	},
	{
		ID: "reorg", Text: "🔄 Reorganization announced! Nobody knows who reports to whom", Icon: "🔄",
		Weight: 5, Sound: "chaotic", Requires: &EventRequires{MinEmployees: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{Synergy: num(s.Synergy - 20), AutoMoney: num(s.AutoMoney - 20)}
		},
	},
	{
		ID: "agile_coach", Text: "🎯 Hired Agile Coach. Things are somehow worse now", Icon: "🎯",
		Weight: 5, Sound: "bad",
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 1000), MeetingTime: num(s.MeetingTime + 20)}
		},
	},
	{
		ID: "mandatory_training", Text: "📚 Mandatory diversity training! (Nothing will change)", Icon: "📚",
		Weight: 6, Sound: "neutral", Requires: &EventRequires{MinEmployees: 5},
		Effect: func(s *State, _ float64) Change { return Change{MeetingTime: num(s.MeetingTime + 10)} },
	},
	{
		ID: "foosball", Text: "⚽ Installed foosball table. Used exactly once.", Icon: "⚽",
		Weight: 5, Sound: "neutral",
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 500), Synergy: num(s.Synergy + 5)}
		},
	},

	// Rare
	{
		ID: "elon_tweet", Text: "🐦 Elon tweeted about your company! (Could go either way)", Icon: "🐦",
		Weight: 1, Sound: "chaotic", Requires: &EventRequires{MinMoney: 500000},
		Effect: func(s *State, roll float64) Change {
			if roll > 0.5 {
				return Change{Money: num(s.Money * 2)}
			}
			return Change{Money: num(math.Floor(s.Money * 0.5))}
		},
	},
	{
		ID: "ipo_disaster", Text: "💀 IPO went terribly! Congrats on the free publicity", Icon: "💀",
		Weight: 1, Sound: "bad", Requires: &EventRequires{MinMoney: 1000000},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(math.Floor(s.Money * 0.7)), LegalLiability: num(s.LegalLiability + 500)}
		},
	},
	{
		ID: "viral_scandal", Text: "🔥 Scandal went viral! All press is good press... right?", Icon: "🔥",
		Weight: 1, Sound: "chaotic", Requires: &EventRequires{MinEmployees: 50},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money + 10000), LegalLiability: num(s.LegalLiability + 250)}
		},
	},
	{
		ID: "found_bitcoin", Text: "₿ Found old Bitcoin wallet from 2011!", Icon: "₿",
		Weight: 1, Sound: "good",
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money + 100000)} },
	},
	{
		ID: "alien_contact", Text: "👽 Aliens made first contact! They want to invest", Icon: "👽",
		Weight: 1, Sound: "chaotic", Requires: &EventRequires{MinMoney: 10000000},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money + 5000000), BuzzwordLevel: cnt(s.BuzzwordLevel + 100)}
		},
	},

	// Additional absurdity
	{
		ID: "printer_jam", Text: "🖨️ Printer jammed. IT says they'll get to it next quarter", Icon: "🖨️",
		Weight: 7, Sound: "neutral",
		Effect: func(_ *State, _ float64) Change { return Change{} },
	},
	{
		ID: "coffee_shortage", Text: "☕ Coffee machine broke! Mass hysteria!", Icon: "☕",
		Weight: 6, Sound: "bad",
		Effect: func(s *State, _ float64) Change {
			return Change{AutoMoney: num(s.AutoMoney - 50), Synergy: num(s.Synergy - 30)}
		},
	},
	{
		ID: "stand_up_meeting", Text: "🕐 Daily standup lasted 2 hours (while standing)", Icon: "🕐",
		Weight: 6, Sound: "bad",
		Effect: func(s *State, _ float64) Change {
			return Change{MeetingTime: num(s.MeetingTime + 15), Synergy: num(s.Synergy - 10)}
		},
	},
	{
		ID: "synergy_overflow", Text: "🌟 Achieved peak synergy! The buzzwords are working!", Icon: "🌟",
		Weight: 3, Sound: "good", Requires: &EventRequires{MinBuzzwordLevel: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{Synergy: num(100), ClickPower: num(s.ClickPower + 25)}
		},
	},
	{
		ID: "passive_aggressive", Text: "😊 Passive-aggressive email chain reached 47 replies", Icon: "😊",
		Weight: 6, Sound: "neutral", Requires: &EventRequires{MinEmployees: 5},
		Effect: func(s *State, _ float64) Change { return Change{Synergy: num(s.Synergy - 15)} },
	},
	{
		ID: "mandatory_fun", Text: "🎉 Mandatory fun activity! (Attendance will be taken)", Icon: "🎉",
		Weight: 5, Sound: "bad", Requires: &EventRequires{MinEmployees: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 1000), MeetingTime: num(s.MeetingTime + 10)}
		},
	},
	{
		ID: "blockchain_pivot", Text: "⛓️ Pivoted to blockchain! (Whatever that means)", Icon: "⛓️",
		Weight: 3, Sound: "chaotic", Requires: &EventRequires{MinBuzzwordLevel: 5},
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money + 5000), BuzzwordLevel: cnt(s.BuzzwordLevel + 5)}
		},
	},
	{
		ID: "office_plant", Text: "🌱 Office plant died. Janet is devastated.", Icon: "🌱",
		Weight: 7, Sound: "neutral",
		Effect: func(s *State, _ float64) Change { return Change{Synergy: num(s.Synergy - 5)} },
	},
	{
		ID: "rebrand_disaster", Text: "✨ Rebrand went horribly! Everyone preferred the old logo", Icon: "✨",
		Weight: 4, Sound: "bad", Requires: &EventRequires{MinMoney: 50000},
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money - 10000)} },
	},
	{
		ID: "influencer_deal", Text: "📱 Influencer partnership! They have 47 real followers", Icon: "📱",
		Weight: 5, Sound: "bad",
		Effect: func(s *State, _ float64) Change { return Change{Money: num(s.Money - 2000)} },
	},
	{
		ID: "award_won", Text: `🏆 Won "Best Place to Work"! (Survey had 3 respondents)`, Icon: "🏆",
		Weight: 4, Sound: "good", Requires: &EventRequires{MinEmployees: 20},
		Effect: func(s *State, _ float64) Change { return Change{Synergy: num(s.Synergy + 25)} },
	},
	{
		ID: "quiet_quitting", Text: `🤫 Half your workforce is "quiet quitting"`, Icon: "🤫",
		Weight: 5, Sound: "bad", Requires: &EventRequires{MinEmployees: 15},
		Effect: func(s *State, _ float64) Change {
			return Change{AutoMoney: num(math.Floor(s.AutoMoney * 0.9))}
		},
	},
	{
		ID: "return_to_office", Text: "🏢 Mandatory return to office! Mass exodus begins", Icon: "🏢",
		Weight: 4, Sound: "bad", Requires: &EventRequires{MinEmployees: 10},
		Effect: func(s *State, _ float64) Change {
			return Change{Employees: cnt(s.Employees - 3), Synergy: num(s.Synergy - 40)}
		},
	},
	{
		ID: "crypto_crash", Text: "💸 CEO's crypto portfolio crashed! Company unaffected", Icon: "💸",
		Weight: 5, Sound: "neutral",
		Effect: func(_ *State, _ float64) Change { return Change{} },
	},
	{
		ID: "metaverse_meeting", Text: "🥽 Meeting in the metaverse! Nobody can figure out how to join", Icon: "🥽",
		Weight: 5, Sound: "bad", Requires: &EventRequires{MinBuzzwordLevel: 15},
		Effect: func(s *State, _ float64) Change {
			return Change{MeetingTime: num(s.MeetingTime + 30), Money: num(s.Money - 500)}
		},
	},
	{
		ID: "tiktok_trend", Text: "🎵 Employees making TikToks instead of working", Icon: "🎵",
		Weight: 6, Sound: "neutral", Requires: &EventRequires{MinEmployees: 5},
		Effect: func(s *State, _ float64) Change {
			return Change{AutoMoney: num(s.AutoMoney - 10), Synergy: num(s.Synergy + 15)}
		},
	},
	{
		ID: "wellness_app", Text: "🧘 Launched wellness app! (Tracks everything you do)", Icon: "🧘",
		Weight: 4, Sound: "chaotic",
		Effect: func(s *State, _ float64) Change {
			return Change{Money: num(s.Money - 5000), LegalLiability: num(s.LegalLiability + 50)}
		},
	},
	{
		ID: "acquihire", Text: "🤝 Acqui-hired a startup! (Paid $10M for 3 engineers)", Icon: "🤝",
		Weight: 3, Sound: "chaotic", Requires: &EventRequires{MinMoney: 100000},
		Effect: func(s *State, _ float64) Change {
			return Change{
				Money:     num(s.Money - 10000),
				Employees: cnt(s.Employees + 3),
				AutoMoney: num(s.AutoMoney + 100),
			}
		},
	},
}

// EligibleEvents returns the events whose requirements the state meets,
// preserving table order.
func EligibleEvents(s *State) []RandomEvent {
	out := make([]RandomEvent, 0, len(RandomEvents))
	for _, ev := range RandomEvents {
		if r := ev.Requires; r != nil {
			if r.MinMoney > 0 && s.Money < r.MinMoney {
				continue
			}
			if r.MinEmployees > 0 && s.Employees < r.MinEmployees {
				continue
			}
			if r.MinBuzzwordLevel > 0 && s.BuzzwordLevel < r.MinBuzzwordLevel {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// PickWeighted selects an event by a linear scan of cumulative weights.
// roll is uniform in [0,1); returns nil when candidates is empty.
func PickWeighted(candidates []RandomEvent, roll float64) *RandomEvent {
	if len(candidates) == 0 {
		return nil
	}
	total := float64(0)
	for _, ev := range candidates {
		total += ev.Weight
	}
	r := roll * total
	for i := range candidates {
		r -= candidates[i].Weight
		if r <= 0 {
			return &candidates[i]
		}
	}
	return &candidates[0]
}
