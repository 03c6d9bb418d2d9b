package api

// User is the backend's user record as it appears in auth responses and in
// durable storage. Field names follow the wire contract.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Nombre     string `json:"nombre"`
	Rol        string `json:"rol,omitempty"`
	Telefono   string `json:"telefono,omitempty"`
	Direccion  string `json:"direccion,omitempty"`
	Verificado bool   `json:"verificado,omitempty"`
}

// SessionData carries the token material of a successful authentication.
type SessionData struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	Usuario      *User  `json:"usuario,omitempty"`
}

// AuthResponse is the backend's envelope for auth endpoints.
type AuthResponse struct {
	Success bool         `json:"success"`
	Mensaje string       `json:"mensaje,omitempty"`
	Data    *SessionData `json:"data,omitempty"`
}

// Producto is a catalog entry from GET /api/productos.
type Producto struct {
	IDProducto       int64   `json:"idProducto"`
	Nombre           string  `json:"nombre"`
	Descripcion      string  `json:"descripcion"`
	CostoUnitario    float64 `json:"costoUnitario"`
	FechaVencimiento string  `json:"fechaVencimiento,omitempty"`
	CategoriaNombre  string  `json:"categoriaNombre,omitempty"`
	URL              string  `json:"url,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Telefono string `json:"telefono,omitempty"`
}

// ProfileUpdate is the body of PATCH /api/user/profile. Nil fields are left
// untouched server-side.
type ProfileUpdate struct {
	Nombre    *string `json:"nombre,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}
