// Package orders exposes a customer's order history.
package orders

import "time"

// Estado is an order's workflow state.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoEnProceso  Estado = "en_proceso"
	EstadoCompletado Estado = "completado"
	EstadoCancelado  Estado = "cancelado"
)

// Linea is one product line of an order.
type Linea struct {
	Nombre         string  `json:"nombre"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}

// Pedido is a past or in-flight customer order.
type Pedido struct {
	ID        int64     `json:"id"`
	Fecha     time.Time `json:"fecha"`
	Total     float64   `json:"total"`
	Estado    Estado    `json:"estado"`
	Productos []Linea   `json:"productos"`
}
