package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/server/metrics"
	"github.com/dmitrijs2005/auxillary/internal/server/services"
)

const maxBodyBytes = 1 << 20

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type response struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a single JSON object from the body, capped at maxBodyBytes.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res *services.Result, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, response{
			Success:      res.Success,
			Message:      res.Message,
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
		})
		return
	}

	if failed, ok := services.ResultFromFailure(err); ok {
		writeJSON(w, statusFor(err), response{Success: false, Message: failed.Message})
		return
	}

	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: common.ErrorInternal.Error()})
}

func (s *Server) observe(op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.Observe(op, metrics.TransportHTTP, services.Outcome(err), time.Since(start))
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		s.observe(metrics.OperationRegister, start, common.ErrorInvalidInput)
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "malformed request body"})
		return
	}

	res, err := s.auth.Register(r.Context(), services.RegistrationRequest{
		UserName:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.ConfirmPassword,
	})
	s.observe(metrics.OperationRegister, start, err)
	s.writeResult(w, r, res, err)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		s.observe(metrics.OperationLogin, start, common.ErrorInvalidInput)
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "malformed request body"})
		return
	}

	res, err := s.auth.Login(r.Context(), services.LoginRequest{
		UserName: req.Username,
		Password: req.Password,
	})
	s.observe(metrics.OperationLogin, start, err)
	s.writeResult(w, r, res, err)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}
