package suppliers

import "errors"

var (
	NotFoundErr         = errors.New("not found")
	InvalidQuantityErr  = errors.New("quantity must be positive")
	InvalidCostErr      = errors.New("cost must not be negative")
	MissingNameErr      = errors.New("nombre is required")
	UnknownProveedorErr = errors.New("unknown proveedor")
	UnknownInsumoErr    = errors.New("unknown insumo")
	UnknownProductoErr  = errors.New("unknown producto")
	WrongEstadoErr      = errors.New("pedido is not in the required estado")
	AlreadyReturnedErr  = errors.New("detalle already returned")
)
