package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"corpclicker/internal/auth"
	"corpclicker/internal/config"
	"corpclicker/internal/game"
	"corpclicker/internal/session"
	"corpclicker/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var errTooManySessions = errors.New("session limit reached")

type Server struct {
	cfg      config.APIConfig
	log      *slog.Logger
	sessions *session.Manager
	store    *store.SnapshotStore
	discord  *auth.DiscordClient
	mux      *chi.Mux
}

// New wires the router. discord and store may be disabled; the endpoints
// that need them answer with a clear error instead.
func New(cfg config.APIConfig, logger *slog.Logger, sessions *session.Manager, snaps *store.SnapshotStore, discord *auth.DiscordClient) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		log:      logger,
		sessions: sessions,
		store:    snaps,
		discord:  discord,
		mux:      chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	timeout := s.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/discord", s.handleDiscordAuth)

		r.Post("/sessions", s.handleCreateSession)
		r.Post("/sessions/restore", s.handleRestoreSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Get("/state", s.handleState)
			r.Post("/click", s.handleClick)
			r.Post("/upgrades/{upgrade_id}/buy", s.handleBuyUpgrade)
			r.Post("/shop/{bp_id}/buy", s.handleBuyBuzzwordUpgrade)
			r.Post("/ascend", s.handleAscend)
			r.Get("/upgrades", s.handleUpgrades)
			r.Get("/synergies", s.handleSynergies)
			r.Get("/toasts", s.handleToasts)
			r.Post("/save", s.handleSave)
			r.Post("/identity", s.handleSetIdentity)
		})
	})
}

func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return nil
	}
	return sess
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxSessions > 0 && s.sessions.Count() >= s.cfg.MaxSessions {
		writeDomainError(w, errTooManySessions)
		return
	}
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": sess.ID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	eng := sess.Engine
	out := map[string]any{
		"state":               eng.Snapshot(),
		"current_tier":        eng.CurrentTier(),
		"next_tier":           eng.NextTier(),
		"can_ascend":          eng.CanAscend(),
		"synergy_multipliers": eng.SynergyMultipliers(),
		"bp_multipliers":      eng.BPMultipliers(),
	}
	if id := sess.GetIdentity(); id != nil {
		out["identity"] = id
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.Click())
}

func (s *Server) handleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	id := chi.URLParam(r, "upgrade_id")
	if game.UpgradeByID(id) == nil {
		writeError(w, http.StatusNotFound, "unknown upgrade: "+id)
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.BuyUpgrade(id))
}

func (s *Server) handleBuyBuzzwordUpgrade(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	id := chi.URLParam(r, "bp_id")
	if game.BuzzwordUpgradeByID(id) == nil {
		writeError(w, http.StatusNotFound, "unknown buzzword upgrade: "+id)
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.BuyBuzzwordUpgrade(id))
}

func (s *Server) handleAscend(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Engine.Ascend())
}

func (s *Server) handleUpgrades(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	st := sess.Engine.Snapshot()
	type offered struct {
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
	var out []offered
	for _, u := range game.AvailableUpgrades(st) {
		cost := game.UpgradeCost(&u, st.UpgradeCount[u.ID])
		out = append(out, offered{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Icon:        u.Icon,
			Tier:        u.Tier,
			Cost:        cost,
			Repeatable:  u.Repeatable(),
			Owned:       st.UpgradeCount[u.ID],
			Affordable:  st.Money >= cost,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"upgrades": out})
}

func (s *Server) handleSynergies(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	type synergyView struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	var active []synergyView
	for _, sy := range sess.Engine.ActiveSynergies() {
		active = append(active, synergyView{ID: sy.ID, Name: sy.Name, Description: sy.Description, Icon: sy.Icon})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":      active,
		"multipliers": sess.Engine.SynergyMultipliers(),
	})
}

func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toasts": sess.DrainToasts()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	id, err := s.store.Save(r.Context(), sess.ID, sess.Engine.Snapshot())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshot_id": id})
}

func (s *Server) handleRestoreSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SnapshotID string `json:"snapshot_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.store.Load(r.Context(), strings.TrimSpace(in.SnapshotID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sess := s.sessions.Restore(st)
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": sess.ID})
}

func (s *Server) handleDiscordAuth(w http.ResponseWriter, r *http.Request) {
	if s.discord == nil {
		writeError(w, http.StatusNotImplemented, "discord identity is not configured")
		return
	}
	var in struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := s.discord.ExchangeCode(r.Context(), strings.TrimSpace(in.Code))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleSetIdentity(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	var in session.Identity
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess.SetIdentity(in)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, store.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrPersistenceDisabled):
		writeError(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, errTooManySessions):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
