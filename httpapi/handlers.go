// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package httpapi implements the session-store HTTP facade: /login, /servicio, /logout,
// and /admin/clear.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/brevane/linhash/logger"
	"github.com/brevane/linhash/session"
)

// Handler serves the session-store HTTP API over a *session.Store.
type Handler struct {
	store  *session.Store
	logger logger.Logger
	mux    *http.ServeMux
}

// NewHandler creates a Handler backed by store. staticDir, if non-empty, is served at "/".
func NewHandler(store *session.Store, log logger.Logger, staticDir string) *Handler {
	h := &Handler{store: store, logger: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("/login", h.login)
	h.mux.HandleFunc("/servicio", h.servicio)
	h.mux.HandleFunc("/logout", h.logout)
	h.mux.HandleFunc("/admin/clear", h.adminClear)
	if staticDir != "" {
		h.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return h
}

// ServeHTTP implements http.Handler, adding the permissive CORS headers the original
// implementation set on every response.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.mux.ServeHTTP(w, r)
}

type loginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Mensaje string `json:"mensaje"`
	Detalle string `json:"detalle,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Mensaje: "Method not allowed"})
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Infof("login: bad request body: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Mensaje: "Error en login",
			Detalle: err.Error()})
		return
	}
	token := h.store.Login(req.Correo, req.Password)
	h.logger.Infof("login: correo=%s token=%s", req.Correo, token)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

type servicioResponse struct {
	Mensaje string `json:"mensaje"`
	Correo  string `json:"correo,omitempty"`
}

func (h *Handler) servicio(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, servicioResponse{Mensaje: "Token requerido"})
		return
	}
	sess, result := h.store.Lookup(token)
	switch result {
	case session.LookupExpired:
		writeJSON(w, http.StatusUnauthorized,
			servicioResponse{Mensaje: "Sesion terminada, vuelva a loguearse"})
		return
	case session.LookupNotFound:
		writeJSON(w, http.StatusUnauthorized,
			servicioResponse{Mensaje: "Token invalido o no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, servicioResponse{Mensaje: "Acceso permitido", Correo: sess.Email})
}

type logoutRequest struct {
	Token string `json:"token"`
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Mensaje: "Method not allowed"})
		return
	}
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Mensaje: "Error en logout"})
		return
	}
	if h.store.Logout(req.Token) {
		writeJSON(w, http.StatusOK, errorResponse{Mensaje: "Sesion cerrada correctamente"})
		return
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Mensaje: "Token no encontrado"})
}

func (h *Handler) adminClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Mensaje: "Method not allowed"})
		return
	}
	h.store.Clear()
	writeJSON(w, http.StatusOK,
		errorResponse{Mensaje: "Todas las sesiones han sido eliminadas"})
}
