package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	cl "corpclicker/internal/cli"
	"corpclicker/internal/config"
	"corpclicker/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "ccl",
		Short:        "Corporate Clicker 3000 terminal client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newQuitCmd(&apiBase),
		newClickCmd(&apiBase),
		newStatsCmd(&apiBase),
		newUpgradesCmd(&apiBase),
		newBuyCmd(&apiBase),
		newShopCmd(&apiBase),
		newSynergiesCmd(&apiBase),
		newAscendCmd(&apiBase),
		newToastsCmd(&apiBase),
		newSaveCmd(&apiBase),
		newRestoreCmd(&apiBase),
		newFlushCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func activeSession(apiBase *string) (cl.Session, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return cl.Session{}, err
	}
	if strings.TrimSpace(sess.BaseURL) != "" {
		*apiBase = sess.BaseURL
	}
	return sess, nil
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh corporate career",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CreateSession(ctx)
			if err != nil {
				return err
			}
			id, _ := out["session_id"].(string)
			if id == "" {
				return fmt.Errorf("server returned no session id")
			}
			if err := cl.SaveSession(cl.Session{SessionID: id, BaseURL: *apiBase}); err != nil {
				return err
			}
			printSuccess("New game started. Click your way to the top: ccl click")
			return nil
		},
	}
}

func newQuitCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Abandon the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return cl.ClearSession()
			}
			if strings.TrimSpace(sess.BaseURL) != "" {
				*apiBase = sess.BaseURL
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := newClient(apiBase).DeleteSession(ctx, sess.SessionID); err != nil {
				printWarn("Server delete failed, clearing local session anyway: " + err.Error())
			}
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Your resignation letter has been filed.")
			return nil
		},
	}
}

func newClickCmd(apiBase *string) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "click",
		Short: "Press the money button",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			if count < 1 {
				count = 1
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			var last map[string]any
			total := 0.0
			for i := 0; i < count; i++ {
				out, err := client.Click(ctx, sess.SessionID)
				if err != nil {
					if queued := maybeQueue(err, http.MethodPost, "/v1/sessions/"+url.PathEscape(sess.SessionID)+"/click", nil); queued {
						printWarn(fmt.Sprintf("Connection lost after %d clicks. Queued one click for replay.", i))
						return nil
					}
					return err
				}
				last = out
				if v, ok := out["earned"].(float64); ok {
					total += v
				}
			}
			renderClickResult(last, count, total)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of clicks to send")
	return cmd
}

func newStatsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"state"},
		Short:   "Show the state of your empire",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			return renderStats(out)
		},
	}
}

func newUpgradesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrades",
		Short: "List upgrades you can see right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ListUpgrades(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			return renderUpgrades(out)
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <upgrade_id>",
		Short: "Buy an upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyUpgrade(ctx, sess.SessionID, id)
			if err != nil {
				path := "/v1/sessions/" + url.PathEscape(sess.SessionID) + "/upgrades/" + url.PathEscape(id) + "/buy"
				if maybeQueue(err, http.MethodPost, path, nil) {
					printWarn("Connection lost. Purchase queued, run `ccl flush` once you are back online.")
					return nil
				}
				return err
			}
			renderPurchase(out, id)
			return nil
		},
	}
}

func newShopCmd(apiBase *string) *cobra.Command {
	shop := &cobra.Command{
		Use:   "shop",
		Short: "Buzzword point prestige shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			return renderShop(out)
		},
	}
	shop.AddCommand(&cobra.Command{
		Use:   "buy <bp_upgrade_id>",
		Short: "Spend buzzword points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyBuzzwordUpgrade(ctx, sess.SessionID, id)
			if err != nil {
				return err
			}
			renderPurchase(out, id)
			return nil
		},
	})
	return shop
}

func newSynergiesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "synergies",
		Short: "Show active synergies and their multipliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ListSynergies(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			return renderSynergies(out)
		},
	}
}

func newAscendCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ascend",
		Short: "Declare bankruptcy and ascend to the next tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Ascend(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			renderAscension(out)
			return nil
		},
	}
}

func newToastsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toasts",
		Short: "Drain pending event, glitch and achievement notices",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Toasts(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			return renderToasts(out)
		},
	}
}

func newSaveCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Snapshot the game to the server database",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Save(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			id, _ := out["snapshot_id"].(string)
			printSuccess("Saved. Snapshot id: " + id)
			return nil
		},
	}
}

func newRestoreCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot_id>",
		Short: "Resume a saved game as a new session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).RestoreSession(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			id, _ := out["session_id"].(string)
			if id == "" {
				return fmt.Errorf("server returned no session id")
			}
			if err := cl.SaveSession(cl.Session{SessionID: id, BaseURL: *apiBase}); err != nil {
				return err
			}
			printSuccess("Game restored. Back to the grind.")
			return nil
		},
	}
}

func newFlushCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Replay commands queued while offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := activeSession(apiBase); err != nil {
				return err
			}
			queued, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queued) == 0 {
				printInfo("Nothing queued.")
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			client := newClient(apiBase)
			var remaining []syncq.Command
			replayed := 0
			for i, c := range queued {
				if _, err := client.Do(ctx, c.Method, c.Path, c.Body); err != nil {
					var apiErr *cl.APIError
					if errors.As(err, &apiErr) {
						printWarn(fmt.Sprintf("Dropped %s %s: %v", c.Method, c.Path, err))
						continue
					}
					remaining = append(remaining, queued[i:]...)
					break
				}
				replayed++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			if len(remaining) > 0 {
				printWarn(fmt.Sprintf("Replayed %d, %d still queued.", replayed, len(remaining)))
				return nil
			}
			printSuccess(fmt.Sprintf("Replayed %d queued commands.", replayed))
			return nil
		},
	}
}

// maybeQueue stores the command locally when the failure was transport-level.
// Server rejections are surfaced, not retried.
func maybeQueue(err error, method, path string, body map[string]any) bool {
	var apiErr *cl.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	if pushErr := syncq.Push(syncq.Command{Method: method, Path: path, Body: body}); pushErr != nil {
		return false
	}
	return true
}
