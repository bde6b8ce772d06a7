package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/go-chi/chi/v5"
)

var errInvalidBody = errors.New("invalid request body")

type recentView struct {
	RecentClass    int   `json:"recent_class"`
	LastQueryTime  int64 `json:"last_query_time"`
	LastUpdateTime int64 `json:"last_update_time"`
}

type activityView struct {
	IsActive       bool  `json:"is_active"`
	ActiveLevel    int   `json:"active_level"`
	IsPublic       bool  `json:"is_public"`
	TotalBattles   int64 `json:"total_battles"`
	LastBattleTime int64 `json:"last_battle_time"`
	UpdateTime     int64 `json:"update_time"`
}

type recentDetailView struct {
	UserRecent recentView    `json:"user_recent"`
	UserInfo   *activityView `json:"user_info"`
}

type enableRecentBody struct {
	RecentClass *int `json:"recent_class"`
}

type updateRecentBody struct {
	RecentClass    *int   `json:"recent_class"`
	LastQueryTime  *int64 `json:"last_query_time"`
	LastUpdateTime *int64 `json:"last_update_time"`
}

func (s *TrackerServer) getRecent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}

	detail, err := s.recent.Detail(r.Context(), req.AccountID, req.Region)
	if errors.Is(err, domain.ErrNotFound) {
		s.writeCode(w, r, CodeUserNotFoundInDatabase, nil)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view := recentDetailView{UserRecent: recentView{
		RecentClass:    detail.Recent.RecentClass,
		LastQueryTime:  detail.Recent.LastQueryTime,
		LastUpdateTime: detail.Recent.LastUpdateTime,
	}}
	if a := detail.Activity; a != nil {
		view.UserInfo = &activityView{
			IsActive:       a.IsActive,
			ActiveLevel:    a.ActiveLevel,
			IsPublic:       a.IsPublic,
			TotalBattles:   a.TotalBattles,
			LastBattleTime: a.LastBattleTime,
			UpdateTime:     a.UpdatedAt.Unix(),
		}
	}
	s.writeSuccess(w, r, view, "")
}

func (s *TrackerServer) checkRecent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}

	enabled, err := s.recent.Enabled(r.Context(), req.AccountID, req.Region)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, map[string]bool{"enabled": enabled}, "")
}

// enableRecent accepts an empty body, which tracks with the default class.
func (s *TrackerServer) enableRecent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}
	var body enableRecentBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	class := constants.DefaultRecentClass
	if body.RecentClass != nil {
		class = *body.RecentClass
	}

	if err := s.recent.Enable(r.Context(), req.AccountID, req.Region, class); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, nil, "")
}

func (s *TrackerServer) updateRecent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}
	var body updateRecentBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.recent.Update(r.Context(), req.AccountID, req.Region, domain.RecentPatch{
		RecentClass:    body.RecentClass,
		LastQueryTime:  body.LastQueryTime,
		LastUpdateTime: body.LastUpdateTime,
	})
	if errors.Is(err, domain.ErrNotFound) {
		s.writeCode(w, r, CodeUserNotFoundInDatabase, nil)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, nil, "")
}

func (s *TrackerServer) disableRecent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}

	if err := s.recent.Disable(r.Context(), req.AccountID, req.Region); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, nil, "")
}

func (s *TrackerServer) listRecent(w http.ResponseWriter, r *http.Request) {
	region, err := domain.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ids, err := s.recent.ListByRegion(r.Context(), region)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, ids, "")
}

func (s *TrackerServer) getVersion(w http.ResponseWriter, r *http.Request) {
	region, err := domain.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	version, err := s.versions.GameVersion(r.Context(), region)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if version == "" {
		s.writeSuccess(w, r, nil, "")
		return
	}
	s.writeSuccess(w, r, map[string]string{"version": version}, "")
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return nil
}
