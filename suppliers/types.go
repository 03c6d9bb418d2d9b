// Package suppliers is the back-office domain: supplier, inventory, recipe
// and product administration, plus the warehouse flow of verifying incoming
// supplier orders and filing return reports.
package suppliers

import "time"

// Proveedor is a supplier the bakery buys from.
type Proveedor struct {
	ID           int64  `json:"id_proveedor"`
	Nombre       string `json:"nombre"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	NumeroCuenta string `json:"numero_cuenta"`
}

// Insumo is a raw ingredient in inventory.
type Insumo struct {
	ID             int64   `json:"id_insumo"`
	Nombre         string  `json:"nombre"`
	Descripcion    string  `json:"descripcion"`
	CostoUnitario  float64 `json:"costo_unitario"`
	CantidadActual int     `json:"cantidad_actual"`
}

// InsumoProveedor links an ingredient to the supplier offering it.
type InsumoProveedor struct {
	InsumoID           int64     `json:"id_insumo"`
	Nombre             string    `json:"nombre"`
	Descripcion        string    `json:"descripcion"`
	CostoUnitario      float64   `json:"costo_unitario"`
	FechaVencimiento   time.Time `json:"fecha_vencimiento"`
	CantidadDisponible int       `json:"cantidad_disponible"`
	ProveedorID        int64     `json:"id_proveedor"`
	NombreProveedor    string    `json:"nombre_proveedor"`
}

// EstadoPedido tracks an incoming supplier order through the warehouse.
type EstadoPedido string

const (
	PedidoPendiente  EstadoPedido = "pendiente"
	PedidoEnTransito EstadoPedido = "en_transito"
	PedidoRecibido   EstadoPedido = "recibido"
	PedidoVerificado EstadoPedido = "verificado"
	PedidoAprobado   EstadoPedido = "aprobado"
)

// PedidoInsumo is an order placed with a supplier.
type PedidoInsumo struct {
	ID              int64        `json:"id_pedido"`
	Nombre          string       `json:"nombre"`
	Descripcion     string       `json:"descripcion"`
	ProveedorID     int64        `json:"id_proveedor"`
	NombreProveedor string       `json:"nombre_proveedor"`
	CostoTotal      float64      `json:"costo_total"`
	FechaPedido     time.Time    `json:"fecha_pedido"`
	EsPagable       bool         `json:"es_pagable"`
	Estado          EstadoPedido `json:"estado"`
}

// DetallePedido is one ingredient line of a supplier order.
type DetallePedido struct {
	ID             int64   `json:"id_detalle"`
	PedidoID       int64   `json:"id_pedido"`
	InsumoID       int64   `json:"id_insumo"`
	NombreInsumo   string  `json:"nombre_insumo,omitempty"`
	CantidadInsumo int     `json:"cantidad_insumo"`
	CostoSubtotal  float64 `json:"costo_subtotal"`
	EsDevuelto     bool    `json:"es_devuelto"`
}

// Reporte documents a problem with a delivered order line, optionally a
// return (devolución).
type Reporte struct {
	ID              int64     `json:"id_devolucion"`
	Razon           string    `json:"razon"`
	EsDevolucion    bool      `json:"es_devolucion"`
	FechaDevolucion time.Time `json:"fecha_devolucion"`
	DetalleID       int64     `json:"id_detalle"`
}

// Receta maps an ingredient quantity into a finished product.
type Receta struct {
	ID             int64  `json:"id_receta"`
	Nombre         string `json:"nombre"`
	Descripcion    string `json:"descripcion"`
	CantidadInsumo int    `json:"cantidad_insumo"`
	InsumoID       int64  `json:"id_insumo"`
	ProductoID     int64  `json:"id_producto"`
	NombreInsumo   string `json:"nombre_insumo,omitempty"`
	NombreProducto string `json:"nombre_producto,omitempty"`
}

// Producto is a finished product the admin manages (distinct from the
// public catalog entry the api package fetches).
type Producto struct {
	ID               int64     `json:"id_producto"`
	Nombre           string    `json:"nombre"`
	Descripcion      string    `json:"descripcion"`
	CostoUnitario    float64   `json:"costo_unitario"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	Categoria        string    `json:"categoria"`
}
