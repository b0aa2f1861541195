package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/authenticating"
	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		resp, err := service.Login(req.Username, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		message := authErr.Err.Error()
		if !authenticating.IsCredentialsError(err) {
			log.L.WithError(err).Error("login failed")
			message = "login is unavailable"
		}
		apiErrors.WriteError(w, authErr.Code, message, nil)
		return
	}

	log.L.WithError(err).Error("login failed")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "login is unavailable", nil)
}
