package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint answers with. Domain outcomes
// such as a hidden profile are HTTP 200 with their own code.
type Response struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Warning string `json:"warning,omitempty"`
}

const (
	CodeSuccess                = 1000
	CodeUserNotExist           = 1001
	CodeClanNotExist           = 1002
	CodeUserHiddenProfile      = 1005
	CodeUserDataIsNone         = 1006
	CodeInvalidParameter       = 1009
	CodeTokenInvalid           = 1013
	CodeUserNotFoundInDatabase = 1020
	CodeNetworkError           = 2000
	CodeClanDataInvalid        = 2001
	CodeDatabaseError          = 3000
	CodeInternalError          = 5000
)

var messages = map[int]string{
	CodeSuccess:                "Success",
	CodeUserNotExist:           "UserNotExist",
	CodeClanNotExist:           "ClanNotExist",
	CodeUserHiddenProfile:      "UserHiddenProfile",
	CodeUserDataIsNone:         "UserDataIsNone",
	CodeInvalidParameter:       "InvalidParameter",
	CodeTokenInvalid:           "ACisInvalid",
	CodeUserNotFoundInDatabase: "UserNotFoundInDatabase",
	CodeNetworkError:           "NetworkError",
	CodeClanDataInvalid:        "ClanDataInvalid",
	CodeDatabaseError:          "DatabaseError",
	CodeInternalError:          "InternalError",
}

// requestLogger prefers the logger middleware.RequestID stored on the
// request, which carries the request id.
func (s *TrackerServer) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.requestLogger(r).Error().Err(err).Str("path", r.URL.Path).Msg("failed to encode response")
	}
}

func (s *TrackerServer) writeCode(w http.ResponseWriter, r *http.Request, code int, data any) {
	status := "ok"
	if code != CodeSuccess {
		status = "error"
	}
	s.writeJSON(w, r, http.StatusOK, Response{
		Status:  status,
		Code:    code,
		Message: messages[code],
		Data:    data,
	})
}

func (s *TrackerServer) writeSuccess(w http.ResponseWriter, r *http.Request, data any, warning string) {
	s.writeJSON(w, r, http.StatusOK, Response{
		Status:  "ok",
		Code:    CodeSuccess,
		Message: messages[CodeSuccess],
		Data:    data,
		Warning: warning,
	})
}

// writeError maps a failure to its status and code. The error text is
// logged here and never sent to the client.
func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, CodeInternalError
	switch {
	case errors.Is(err, domain.ErrInvalidRegion),
		errors.Is(err, domain.ErrInvalidRecent),
		errors.Is(err, errInvalidID),
		errors.Is(err, errInvalidBody):
		status, code = http.StatusBadRequest, CodeInvalidParameter
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, code = http.StatusInternalServerError, CodeDatabaseError
	case errors.Is(err, domain.ErrRemoteUnavailable):
		status, code = http.StatusBadGateway, CodeNetworkError
	case errors.Is(err, domain.ErrUnknownLeagueColor):
		status, code = http.StatusBadGateway, CodeClanDataInvalid
	}

	log := s.requestLogger(r)
	event := log.Error()
	msg := "request failed"
	if status < http.StatusInternalServerError {
		event = log.Warn()
		msg = "rejecting request"
	}
	event.Err(err).Str("path", r.URL.Path).Int("code", code).Msg(msg)

	s.writeJSON(w, r, status, Response{
		Status:  "error",
		Code:    code,
		Message: messages[code],
	})
}
