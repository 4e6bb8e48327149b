package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"corpclicker/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

type statePayload struct {
	State       game.State          `json:"state"`
	CurrentTier game.AscensionTier  `json:"current_tier"`
	NextTier    *game.AscensionTier `json:"next_tier"`
	CanAscend   bool                `json:"can_ascend"`
}

type upgradesPayload struct {
	Upgrades []offeredUpgrade `json:"upgrades"`
}

type offeredUpgrade struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Tier        int     `json:"tier"`
	Cost        float64 `json:"cost"`
	Repeatable  bool    `json:"repeatable"`
	Owned       int     `json:"owned"`
	Affordable  bool    `json:"affordable"`
}

type synergiesPayload struct {
	Active []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"active"`
	Multipliers game.SynergyEffect `json:"multipliers"`
}

type toastsPayload struct {
	Toasts []struct {
		Text    string    `json:"text"`
		Kind    string    `json:"kind"`
		Created time.Time `json:"created"`
	} `json:"toasts"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderClickResult(raw map[string]any, clicks int, total float64) {
	if raw == nil {
		return
	}
	combo := 0
	if v, ok := raw["combo"].(float64); ok {
		combo = int(v)
	}
	mult := 1.0
	if v, ok := raw["combo_multiplier"].(float64); ok {
		mult = v
	}
	meter := 0.0
	if v, ok := raw["glitch_meter"].(float64); ok {
		meter = v
	}
	line := fmt.Sprintf("+%s from %d click(s)", formatMoney(total), clicks)
	if mult > 1 {
		line += fmt.Sprintf("  combo x%d (x%.0f payout)", combo, mult)
	}
	success.Println(line)
	if meter >= 100 {
		danger.Println("GLITCH METER FULL. Reality is negotiable.")
	} else if meter >= 75 {
		warn.Printf("Glitch meter: %.0f%%\n", meter)
	}
}

func renderStats(raw map[string]any) error {
	p, err := decodeInto[statePayload](raw)
	if err != nil {
		return err
	}
	st := p.State

	accent.Printf("\n== CORPORATE CLICKER 3000 — %s ==\n", p.CurrentTier.Name)
	fmt.Printf("Money:            $%s\n", formatMoney(st.Money))
	fmt.Printf("Per click:        $%s\n", formatMoney(st.ClickPower))
	fmt.Printf("Per second:       $%s\n", formatMoney(st.AutoMoney))
	fmt.Printf("Lifetime:         $%s\n", formatMoney(st.LifetimeEarnings))
	fmt.Printf("Employees:        %d\n", st.Employees)
	fmt.Printf("Buzzword level:   %d\n", st.BuzzwordLevel)
	fmt.Printf("Synergy:          %.1f%%\n", st.Synergy)
	fmt.Printf("Electrolytes:     %.1f%%\n", st.Electrolytes)
	fmt.Printf("Legal liability:  %.0f\n", st.LegalLiability)
	fmt.Printf("Total clicks:     %d\n", st.TotalClicks)

	if st.AscensionTier > 0 || st.TemporalFlux > 0 || st.GlitchMeter > 0 {
		fmt.Println()
		accent.Println("Reality")
		fmt.Printf("Buzzword points:  %.0f\n", st.BuzzwordPoints)
		fmt.Printf("Temporal flux:    %.1f\n", st.TemporalFlux)
		fmt.Printf("Stability:        %.1f%%\n", st.RealityStability)
		fmt.Printf("Glitch meter:     %.1f%%\n", st.GlitchMeter)
		if len(st.ActiveGlitches) > 0 {
			fmt.Printf("Active glitches:  %s\n", strings.Join(st.ActiveGlitches, ", "))
		}
	}

	if p.NextTier != nil {
		fmt.Println()
		if p.CanAscend {
			success.Printf("Ready to ascend to %s (reward: %.0f BP). Run `ccl ascend`.\n", p.NextTier.Name, p.NextTier.BuzzwordReward)
		} else {
			fmt.Printf("Next tier: %s at $%s\n", p.NextTier.Name, formatMoney(p.NextTier.Cost))
		}
	}
	fmt.Println()
	return nil
}

func renderUpgrades(raw map[string]any) error {
	p, err := decodeInto[upgradesPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== UPGRADES ==")
	if len(p.Upgrades) == 0 {
		printInfo("Nothing for sale yet. Keep clicking.")
		return nil
	}
	fmt.Printf("%-24s %-26s %14s %6s %s\n", "ID", "NAME", "COST", "OWNED", "")
	for _, u := range p.Upgrades {
		repeat := ""
		if u.Repeatable {
			repeat = "(repeatable)"
		}
		line := fmt.Sprintf("%-24s %-26s %14s %6d %s",
			u.ID, truncate(u.Name, 26), "$"+formatMoney(u.Cost), u.Owned, repeat)
		if u.Affordable {
			fmt.Println(line)
		} else {
			neutral.Println(line)
		}
	}
	fmt.Println()
	return nil
}

func renderPurchase(raw map[string]any, id string) {
	applied, _ := raw["applied"].(bool)
	if !applied {
		printWarn("Purchase rejected. Check price and prerequisites: ccl upgrades")
		return
	}
	cost := 0.0
	if v, ok := raw["cost"].(float64); ok {
		cost = v
	}
	printSuccess(fmt.Sprintf("Bought %s for $%s", id, formatMoney(cost)))
	if syns, ok := raw["new_synergies"].([]any); ok && len(syns) > 0 {
		names := make([]string, 0, len(syns))
		for _, s := range syns {
			if name, ok := s.(string); ok {
				names = append(names, name)
			}
		}
		accent.Println("SYNERGY UNLOCKED: " + strings.Join(names, ", "))
	}
}

func renderShop(raw map[string]any) error {
	p, err := decodeInto[statePayload](raw)
	if err != nil {
		return err
	}
	st := p.State
	accent.Printf("\n== BUZZWORD SHOP (%.0f BP) ==\n", st.BuzzwordPoints)
	fmt.Printf("%-24s %-24s %8s %-10s %s\n", "ID", "NAME", "COST", "CATEGORY", "OWNED")
	for _, u := range game.BuzzwordUpgrades {
		owned := ""
		for _, id := range st.PurchasedBPUpgrades {
			if id == u.ID {
				owned = "yes"
				break
			}
		}
		line := fmt.Sprintf("%-24s %-24s %8.0f %-10s %s",
			u.ID, truncate(u.Name, 24), u.Cost, u.Category, owned)
		if owned == "yes" {
			neutral.Println(line)
		} else if st.BuzzwordPoints >= u.Cost {
			fmt.Println(line)
		} else {
			neutral.Println(line)
		}
	}
	fmt.Println()
	return nil
}

func renderSynergies(raw map[string]any) error {
	p, err := decodeInto[synergiesPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== SYNERGIES ==")
	if len(p.Active) == 0 {
		printInfo("No active synergies. Combine the right upgrades.")
		return nil
	}
	for _, s := range p.Active {
		fmt.Printf("%s %s — %s\n", s.Icon, s.Name, s.Description)
	}
	m := p.Multipliers
	fmt.Println()
	fmt.Printf("Money x%.2f  Click x%.2f  Auto x%.2f\n", m.MoneyMultiplier, m.ClickPowerMultiplier, m.AutoMoneyMultiplier)
	if m.TemporalFluxGain > 0 || m.GlitchMeterBonus > 0 {
		fmt.Printf("Flux +%.1f  Glitch meter +%.1f\n", m.TemporalFluxGain, m.GlitchMeterBonus)
	}
	if m.Chaos {
		danger.Println("CHAOS MODE ENABLED")
	}
	fmt.Println()
	return nil
}

func renderAscension(raw map[string]any) {
	applied, _ := raw["applied"].(bool)
	if !applied {
		printWarn("Not enough money to ascend yet. Check `ccl stats` for the threshold.")
		return
	}
	name, _ := raw["tier_name"].(string)
	reward := 0.0
	if v, ok := raw["buzzword_reward"].(float64); ok {
		reward = v
	}
	accent.Printf("\nREALITY SHIFT: welcome to %s\n", name)
	printSuccess(fmt.Sprintf("+%.0f buzzword points. Spend them: ccl shop", reward))
}

func renderToasts(raw map[string]any) error {
	p, err := decodeInto[toastsPayload](raw)
	if err != nil {
		return err
	}
	if len(p.Toasts) == 0 {
		printInfo("Nothing happened. Suspiciously quiet.")
		return nil
	}
	for _, t := range p.Toasts {
		stamp := t.Created.Local().Format("15:04:05")
		switch t.Kind {
		case "glitch":
			danger.Printf("[%s] %s\n", stamp, t.Text)
		case "achievement":
			success.Printf("[%s] %s\n", stamp, t.Text)
		default:
			fmt.Printf("[%s] %s\n", stamp, t.Text)
		}
	}
	return nil
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	frac := int64((v - float64(whole)) * 100)
	return fmt.Sprintf("%s%s.%02d", sign, comma(whole), frac)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
