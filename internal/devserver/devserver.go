// Package devserver is an in-memory stand-in for the OldBaker backend. It
// serves the same endpoints and envelope shapes as the production API so the
// storefront client can run end to end without network access.
package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/oldbaker/go-storefront/api"
)

// account is a backend user record. The password is kept hashed even in the
// development fixture set.
type account struct {
	api.User
	PasswordHash string
	Activo       bool
}

// Server holds the in-memory backend state behind a chi router.
type Server struct {
	router chi.Router
	issuer *TokenIssuer

	lock          sync.Mutex
	accounts      map[string]*account // keyed by email
	nextID        int64
	verifyCodes   map[int64]string  // user id -> emailed verification code
	resetCodes    map[string]string // email -> emailed reset code
	revokedTokens map[string]bool   // jti of logged-out tokens
	productos     []api.Producto
}

// New creates a server seeded with the development fixture accounts and
// product catalog.
func New(issuer *TokenIssuer) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		issuer:        issuer,
		accounts:      map[string]*account{},
		nextID:        1,
		verifyCodes:   map[int64]string{},
		resetCodes:    map[string]string{},
		revokedTokens: map[string]bool{},
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/worker/login", s.handleWorkerLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/verify", s.handleVerify)
		r.Post("/forgot", s.handleForgot)
		r.Post("/reset/verify", s.handleResetVerify)
		r.Post("/reset", s.handleReset)
	})

	s.router.Get("/api/productos", s.handleProductos)
	s.router.Get("/api/productos/{id}", s.handleProducto)

	s.router.Route("/api/user", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/logout", s.handleLogout)
		r.Patch("/profile", s.handleUpdateProfile)
		r.Post("/{id}/deactivate", s.handleDeactivate)
		r.Get("/direccion", s.handleDireccion)
	})
}

// ServeHTTP makes the server mountable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) seed() {
	fixtures := []struct {
		nombre, email, rol, telefono, direccion, password string
	}{
		{"Ana Torres", "ana@oldbaker.com", "CLIENTE", "3001234567", "Calle 10 #4-21, Bogotá", "secreto123"},
		{"Bruno Osorio", "bodega@oldbaker.com", "AUXILIAR", "3017654321", "", "bodega123"},
		{"Carla Mejía", "admin@oldbaker.com", "ADMIN", "3020001122", "", "admin123"},
	}
	for _, f := range fixtures {
		hash, err := hashPassword(f.password)
		if err != nil {
			log.Fatal().Err(err).Str("email", f.email).Msg("could not hash fixture password")
		}
		s.accounts[f.email] = &account{
			User: api.User{
				ID:         s.nextID,
				Email:      f.email,
				Nombre:     f.nombre,
				Rol:        f.rol,
				Telefono:   f.telefono,
				Direccion:  f.direccion,
				Verificado: true,
			},
			PasswordHash: hash,
			Activo:       true,
		}
		s.nextID++
	}

	s.productos = []api.Producto{
		{IDProducto: 1, Nombre: "Baguette", Descripcion: "Pan francés tradicional", CostoUnitario: 3500, CategoriaNombre: "Panadería", URL: "/img/baguette.jpg"},
		{IDProducto: 2, Nombre: "Croissant", Descripcion: "Hojaldre de mantequilla", CostoUnitario: 4200, CategoriaNombre: "Panadería", URL: "/img/croissant.jpg"},
		{IDProducto: 3, Nombre: "Torta de Chocolate", Descripcion: "Porción individual", CostoUnitario: 8500, CategoriaNombre: "Repostería", URL: "/img/torta-chocolate.jpg"},
		{IDProducto: 4, Nombre: "Pan Integral", Descripcion: "Hogaza de 500g", CostoUnitario: 6000, CategoriaNombre: "Panadería", URL: "/img/pan-integral.jpg"},
	}
}

// VerificationCode reports the code emailed to a freshly registered user.
// The development server has no mailer, so callers read it directly.
func (s *Server) VerificationCode(userID int64) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	code, ok := s.verifyCodes[userID]
	return code, ok
}

// ResetCode reports the code emailed for a pending password reset.
func (s *Server) ResetCode(email string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	code, ok := s.resetCodes[email]
	return code, ok
}

func (s *Server) accountByID(id int64) *account {
	for _, acct := range s.accounts {
		if acct.ID == id {
			return acct
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("could not encode response")
	}
}

func writeEnvelope(w http.ResponseWriter, status int, mensaje string, data *api.SessionData) {
	writeJSON(w, status, api.AuthResponse{
		Success: status < 400,
		Mensaje: mensaje,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, mensaje string) {
	writeEnvelope(w, status, mensaje, nil)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
