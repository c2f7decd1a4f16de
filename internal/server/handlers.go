package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"leadscope/internal/enrich"
	"leadscope/internal/model"
)

const reasonPrivateIP = "Private or reserved IP"

const maxVisitsPageSize = 500

func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	ip := strings.TrimSpace(r.PathValue("ip"))

	res, ok := s.enrichChecked(w, ip)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ip := strings.TrimSpace(req.IP)
	res, ok := s.enrichChecked(w, ip)
	if !ok {
		return
	}

	if res.Status == model.StatusSuccess && s.store != nil {
		visit := &model.Visit{
			IP:          ip,
			CompanyName: res.CompanyProfile.CompanyName,
			Domain:      res.CompanyProfile.Domain,
			Source:      res.CompanyProfile.EnrichmentSource,
			Profile:     res.CompanyProfile,
			VisitedAt:   time.Now(),
		}
		if err := s.store.SaveVisit(visit); err != nil {
			log.Warn("failed to persist visit", "ip", ip, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

// enrichChecked validates the IP, short-circuits private ranges and runs the
// pipeline. On failure it writes the error response and returns ok=false.
func (s *Server) enrichChecked(w http.ResponseWriter, ip string) (*model.EnrichmentResult, bool) {
	if ip == "" {
		writeError(w, http.StatusBadRequest, "IP address required")
		return nil, false
	}
	if net.ParseIP(ip) == nil {
		writeError(w, http.StatusBadRequest, "invalid IP address format")
		return nil, false
	}
	if isPrivateIP(ip) {
		return model.Filtered(reasonPrivateIP), true
	}

	res, err := s.service.Enrich(ip)
	if err != nil {
		if errors.Is(err, enrich.ErrInvalidIP) {
			writeError(w, http.StatusBadRequest, "invalid IP address format")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return res, true
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		enrich.Stats
		StoreEnabled bool `json:"store_enabled"`
		StoreVisits  int  `json:"store_visits"`
	}{
		Stats:        s.service.Stats(),
		StoreEnabled: s.store != nil,
	}
	if s.store != nil {
		resp.StoreVisits = s.store.CountVisits()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"cleared": s.service.ClearCache(),
	})
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	domains := s.service.AvailableDomains()
	writeJSON(w, http.StatusOK, map[string]any{
		"domains": domains,
		"count":   len(domains),
	})
}

func (s *Server) handleVisits(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxVisitsPageSize)
	}

	visits, err := s.store.RecentVisits(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to query visits")
		return
	}
	if visits == nil {
		visits = []model.Visit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"visits": visits,
		"count":  len(visits),
	})
}
