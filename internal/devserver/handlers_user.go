package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/oldbaker/go-storefront/api"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// requireAuth verifies the bearer token and rejects revoked sessions.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			writeError(w, http.StatusUnauthorized, "token requerido")
			return
		}

		claims, err := s.issuer.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "token inválido")
			return
		}

		s.lock.Lock()
		revoked := s.revokedTokens[claimJTI(claims)]
		s.lock.Unlock()
		if revoked {
			writeError(w, http.StatusUnauthorized, "sesión cerrada")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) jwtlib.MapClaims {
	claims, _ := ctx.Value(claimsContextKey).(jwtlib.MapClaims)
	return claims
}

func claimJTI(claims jwtlib.MapClaims) string {
	jti, _ := claims["jti"].(string)
	return jti
}

func claimUserID(claims jwtlib.MapClaims) int64 {
	sub, _ := claims["sub"].(string)
	id, _ := strconv.ParseInt(sub, 10, 64)
	return id
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	s.lock.Lock()
	s.revokedTokens[claimJTI(claims)] = true
	s.lock.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update api.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud inválida")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	acct := s.accountByID(claimUserID(claimsFromContext(r.Context())))
	if acct == nil {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}

	if update.Nombre != nil {
		acct.Nombre = *update.Nombre
	}
	if update.Telefono != nil {
		acct.Telefono = *update.Telefono
	}
	if update.Direccion != nil {
		acct.Direccion = *update.Direccion
	}

	writeJSON(w, http.StatusOK, acct.User)
}

func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if claimUserID(claimsFromContext(r.Context())) != id {
		writeError(w, http.StatusForbidden, "solo la propia cuenta puede desactivarse")
		return
	}
	acct := s.accountByID(id)
	if acct == nil {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}

	acct.Activo = false
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDireccion(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	acct := s.accountByID(claimUserID(claimsFromContext(r.Context())))
	if acct == nil {
		writeError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, acct.Direccion)
}

func (s *Server) handleProductos(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	writeJSON(w, http.StatusOK, s.productos)
}

func (s *Server) handleProducto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, producto := range s.productos {
		if producto.IDProducto == id {
			writeJSON(w, http.StatusOK, producto)
			return
		}
	}
	writeError(w, http.StatusNotFound, "producto no encontrado")
}
