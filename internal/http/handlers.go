package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/matchmaking"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/referee"
	"github.com/charmbracelet/log"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// respondError maps core errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, match.ErrNotFound),
		errors.Is(err, dispute.ErrNotFound),
		errors.Is(err, league.ErrNotFound),
		errors.Is(err, matchmaking.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, match.ErrInvalidTransition),
		errors.Is(err, dispute.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, draft.ErrInvalidAction),
		errors.Is(err, draft.ErrComplete),
		errors.Is(err, referee.ErrPlayerNotInMatch):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Matches.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Matches.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			matches []*match.Match
			err     error
		)
		if state := r.URL.Query().Get("state"); state != "" {
			matches, err = s.Matches.GetByState(match.State(state))
		} else {
			matches, err = s.Matches.GetAll()
		}
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			return
		}
		respondJSON(w, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		m, err := s.Matches.Get(matchID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) CheckinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
			UserID  string `json:"user_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		m, err := s.Referee.Checkin(req.MatchID, req.UserID, isDryRunFromContext(r))
		if err != nil {
			log.Error("Check-in failed", "matchID", req.MatchID, "userID", req.UserID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) CancelMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		m, err := s.Referee.Cancel(matchID, isDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) ExpireHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ttl := time.Duration(s.Cfg.MatchTTLMinutes) * time.Minute
		cutoff := time.Now().Add(-ttl).Unix()
		expired, err := s.Referee.ExpireStale(cutoff, isDryRunFromContext(r))
		if err != nil {
			log.Error("Expiry sweep failed", "error", err)
			http.Error(w, "Failed to expire matches", http.StatusInternalServerError)
			return
		}
		log.Info("Expiry sweep finished", "expired", len(expired))
		respondJSON(w, map[string]any{"expired": expired})
	}
}

func (s *Server) DraftActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
			UserID  string `json:"user_id"`
			AgentID string `json:"agent_id"`
			Type    string `json:"type"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		m, err := s.Referee.ApplyDraftAction(req.MatchID, req.UserID, req.AgentID, draft.ActionType(req.Type), isDryRunFromContext(r))
		if err != nil {
			log.Error("Draft action rejected", "matchID", req.MatchID, "userID", req.UserID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

// evidenceRequest is the shared body shape for both evidence channels.
type evidenceRequest struct {
	MatchID        string             `json:"match_id"`
	UserID         string             `json:"user_id,omitempty"`
	DetectedAgents []string           `json:"detected_agents,omitempty"`
	Confidence     map[string]float64 `json:"confidence,omitempty"`
	Result         string             `json:"result"`
	FrameHash      string             `json:"frame_hash,omitempty"`
	CropURL        string             `json:"crop_url,omitempty"`
}

func (req evidenceRequest) record() match.EvidenceRecord {
	return match.EvidenceRecord{
		UserID:         req.UserID,
		DetectedAgents: req.DetectedAgents,
		Confidence:     req.Confidence,
		Result:         match.EvidenceVerdict(req.Result),
		FrameHash:      req.FrameHash,
		CropURL:        req.CropURL,
	}
}

func (s *Server) PrecheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evidenceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		m, err := s.Referee.RecordPrecheck(req.MatchID, req.record(), isDryRunFromContext(r))
		if err != nil {
			log.Error("Precheck evidence rejected", "matchID", req.MatchID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) InrunHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evidenceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		m, err := s.Referee.RecordInrun(req.MatchID, req.record(), isDryRunFromContext(r))
		if err != nil {
			log.Error("In-run evidence rejected", "matchID", req.MatchID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID    string  `json:"match_id"`
			MetricType string  `json:"metric_type"`
			Value      float64 `json:"value"`
			ProofURL   string  `json:"proof_url"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		proof := match.ResultProof{
			MetricType: req.MetricType,
			Value:      req.Value,
			ProofURL:   req.ProofURL,
		}
		m, err := s.Referee.RecordResult(req.MatchID, proof, isDryRunFromContext(r))
		if err != nil {
			log.Error("Result submission rejected", "matchID", req.MatchID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) ConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
			UserID  string `json:"user_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		m, err := s.Referee.Confirm(req.MatchID, req.UserID, isDryRunFromContext(r))
		if err != nil {
			log.Error("Confirmation rejected", "matchID", req.MatchID, "userID", req.UserID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) OpenDisputeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
			UserID  string `json:"user_id"`
			Reason  string `json:"reason"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		d, err := s.Referee.OpenDispute(req.MatchID, req.UserID, req.Reason, isDryRunFromContext(r))
		if err != nil {
			log.Error("Dispute rejected", "matchID", req.MatchID, "userID", req.UserID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, d)
	}
}

func (s *Server) ResolveDisputeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DisputeID string `json:"dispute_id"`
			Decision  string `json:"decision"`
			Uphold    bool   `json:"uphold"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		d, err := s.Referee.ResolveDispute(req.DisputeID, req.Decision, req.Uphold, isDryRunFromContext(r))
		if err != nil {
			log.Error("Dispute resolution rejected", "disputeID", req.DisputeID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, d)
	}
}

func (s *Server) ListDisputesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			disputes []*dispute.Dispute
			err      error
		)
		if matchID := r.URL.Query().Get("matchID"); matchID != "" {
			disputes, err = s.Disputes.ListByMatch(matchID)
		} else {
			disputes, err = s.Disputes.ListOpen()
		}
		if err != nil {
			log.Error("Failed to list disputes", "error", err)
			http.Error(w, "Failed to list disputes", http.StatusInternalServerError)
			return
		}
		respondJSON(w, disputes)
	}
}

func (s *Server) MatchmakingSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QueueID string `json:"queue_id"`
			UserID  string `json:"user_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		res, err := s.Coordinator.Search(req.QueueID, req.UserID, isDryRunFromContext(r))
		if err != nil {
			log.Error("Matchmaking search failed", "queueID", req.QueueID, "userID", req.UserID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

func (s *Server) MatchmakingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := r.URL.Query().Get("ticketID")
		if ticketID == "" {
			http.Error(w, "ticketID is required", http.StatusBadRequest)
			return
		}
		res, err := s.Coordinator.PollStatus(ticketID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

func (s *Server) MatchmakingCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := r.URL.Query().Get("ticketID")
		if ticketID == "" {
			http.Error(w, "ticketID is required", http.StatusBadRequest)
			return
		}
		res, err := s.Coordinator.Cancel(ticketID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := r.URL.Query().Get("leagueID")
		if leagueID == "" {
			http.Error(w, "leagueID is required", http.StatusBadRequest)
			return
		}
		standings, err := s.Leagues.GetStandings(leagueID)
		if err != nil {
			log.Error("Failed to get standings", "leagueID", leagueID, "error", err)
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Get("notify") == "true" {
			if err := s.Notifier.SendStandings(standings, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send standings notification", "error", err)
			}
		}
		respondJSON(w, standings)
	}
}

// ApplyRatingHandler applies a resolved match's outcome to both players'
// ratings. The caller decides when a result is final enough to score; the
// rating math itself never runs automatically on resolution.
func (s *Server) ApplyRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string  `json:"match_id"`
			ScoreA  float64 `json:"score_a"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.ScoreA < 0 || req.ScoreA > 1 {
			http.Error(w, "score_a must be between 0 and 1", http.StatusBadRequest)
			return
		}
		m, err := s.Matches.Get(req.MatchID)
		if err != nil {
			respondError(w, err)
			return
		}
		if m.State != match.StateResolved {
			respondError(w, fmt.Errorf("%w: cannot score %s match", match.ErrInvalidTransition, m.State))
			return
		}
		updated, err := s.applyRatings(m, req.ScoreA)
		if err != nil {
			log.Error("Failed to apply ratings", "matchID", m.ID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, updated)
	}
}

func (s *Server) applyRatings(m *match.Match, scoreA float64) ([]league.PlayerRating, error) {
	var sideA, sideB *match.Player
	for i := range m.Players {
		switch m.Players[i].Side {
		case draft.SideA:
			sideA = &m.Players[i]
		case draft.SideB:
			sideB = &m.Players[i]
		}
	}
	if sideA == nil || sideB == nil {
		return nil, fmt.Errorf("match %s does not have both sides seated", m.ID)
	}

	ratingA, err := s.Leagues.GetRating(sideA.UserID, m.LeagueID)
	if err != nil {
		return nil, err
	}
	ratingB, err := s.Leagues.GetRating(sideB.UserID, m.LeagueID)
	if err != nil {
		return nil, err
	}

	newA, newB := s.Rating.Update(ratingA.Elo, ratingB.Elo, ratingA.ProvisionalMatches, ratingB.ProvisionalMatches, scoreA)
	now := time.Now().Unix()
	updated := []league.PlayerRating{
		{UserID: sideA.UserID, LeagueID: m.LeagueID, Elo: newA, ProvisionalMatches: ratingA.ProvisionalMatches + 1, UpdatedAt: now},
		{UserID: sideB.UserID, LeagueID: m.LeagueID, Elo: newB, ProvisionalMatches: ratingB.ProvisionalMatches + 1, UpdatedAt: now},
	}
	for _, rec := range updated {
		if err := s.Leagues.UpsertRating(rec); err != nil {
			return nil, err
		}
	}
	log.Info("Ratings applied", "matchID", m.ID, "sideA", sideA.UserID, "eloA", newA, "sideB", sideB.UserID, "eloB", newB)
	return updated, nil
}

func (s *Server) ActiveSeasonHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := r.URL.Query().Get("leagueID")
		if leagueID == "" {
			http.Error(w, "leagueID is required", http.StatusBadRequest)
			return
		}
		season, err := s.Leagues.GetActiveSeason(leagueID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, season)
	}
}

func (s *Server) ListAgentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agents, err := s.Leagues.GetAllAgents()
		if err != nil {
			log.Error("Failed to get agents from store", "error", err)
			http.Error(w, "Failed to get agents", http.StatusInternalServerError)
			return
		}
		respondJSON(w, agents)
	}
}
