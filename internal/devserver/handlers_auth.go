package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/oldbaker/go-storefront/api"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, false)
}

// handleWorkerLogin authenticates warehouse and admin staff. Customer
// accounts are rejected even with the right password.
func (s *Server) handleWorkerLogin(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, true)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, staffOnly bool) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud inválida")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	acct, ok := s.accounts[creds.Email]
	if !ok || !checkPasswordHash(creds.Password, acct.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}
	if !acct.Activo {
		writeError(w, http.StatusForbidden, "cuenta desactivada")
		return
	}
	if !acct.Verificado {
		writeError(w, http.StatusForbidden, "cuenta no verificada")
		return
	}
	if staffOnly && acct.Rol == "CLIENTE" {
		writeError(w, http.StatusForbidden, "acceso solo para personal")
		return
	}

	s.respondSession(w, acct)
}

func (s *Server) respondSession(w http.ResponseWriter, acct *account) {
	signed, err := s.issuer.Issue(acct)
	if err != nil {
		log.Error().Err(err).Str("email", acct.Email).Msg("could not issue token")
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	usuario := acct.User
	writeEnvelope(w, http.StatusOK, "", &api.SessionData{
		AccessToken: signed,
		TokenType:   "Bearer",
		Usuario:     &usuario,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud inválida")
		return
	}
	if req.Email == "" || req.Password == "" || req.Nombre == "" {
		writeError(w, http.StatusBadRequest, "nombre, email y password son obligatorios")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "el email ya está registrado")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	acct := &account{
		User: api.User{
			ID:       s.nextID,
			Email:    req.Email,
			Nombre:   req.Nombre,
			Telefono: req.Telefono,
			Rol:      "CLIENTE",
		},
		PasswordHash: hash,
		Activo:       true,
	}
	s.nextID++
	s.accounts[req.Email] = acct

	code := newCode()
	s.verifyCodes[acct.ID] = code
	log.Info().Str("email", acct.Email).Str("codigo", code).Msg("verification code issued")

	usuario := acct.User
	writeEnvelope(w, http.StatusOK, "código de verificación enviado", &api.SessionData{Usuario: &usuario})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     int64  `json:"id"`
		Codigo string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud inválida")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	code, ok := s.verifyCodes[req.ID]
	if !ok || code != req.Codigo {
		writeError(w, http.StatusUnauthorized, "código de verificación incorrecto")
		return
	}
	delete(s.verifyCodes, req.ID)

	acct := s.accountByID(req.ID)
	if acct == nil {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	acct.Verificado = true

	s.respondSession(w, acct)
}

// handleForgot records a reset code for the emailed address. It answers 200
// whether the account exists or not.
func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	email := readTextBody(r)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email obligatorio")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.accounts[email]; ok {
		code := newCode()
		s.resetCodes[email] = code
		log.Info().Str("email", email).Str("codigo", code).Msg("reset code issued")
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleResetVerify(w http.ResponseWriter, r *http.Request) {
	code := readTextBody(r)

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, pending := range s.resetCodes {
		if pending == code && code != "" {
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "código de restablecimiento incorrecto")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud inválida")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.resetCodes[req.Email]; !ok {
		writeError(w, http.StatusUnauthorized, "no hay restablecimiento pendiente")
		return
	}
	acct, ok := s.accounts[req.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}
	acct.PasswordHash = hash
	delete(s.resetCodes, req.Email)

	writeEnvelope(w, http.StatusOK, "contraseña actualizada", nil)
}

func newCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func readTextBody(r *http.Request) string {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
