package suppliers

import (
	"sync"
	"time"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Service holds the back-office data and enforces its invariants. State is
// in-memory, seeded with the same stand-in fixtures the web client ships;
// ids are assigned max+1 like the original screen does.
type Service struct {
	lock sync.RWMutex

	proveedores      []Proveedor
	insumos          []Insumo
	insumosProveedor []InsumoProveedor
	pedidos          []PedidoInsumo
	detalles         []DetallePedido
	reportes         []Reporte
	recetas          []Receta
	productos        []Producto
}

// NewService returns a service seeded with the stand-in fixtures.
func NewService() *Service {
	return &Service{
		proveedores: []Proveedor{
			{ID: 1, Nombre: "Distribuidora Central", Telefono: "+57 300 123 4567", Email: "ventas@distribuidora.com", NumeroCuenta: "1234567890"},
			{ID: 2, Nombre: "Harinas del Valle", Telefono: "+57 301 234 5678", Email: "contacto@harinas.com", NumeroCuenta: "0987654321"},
		},
		insumos: []Insumo{
			{ID: 1, Nombre: "Harina de Trigo", Descripcion: "Harina premium para panificación", CostoUnitario: 2500, CantidadActual: 50},
			{ID: 2, Nombre: "Azúcar Blanca", Descripcion: "Azúcar refinada para repostería", CostoUnitario: 3000, CantidadActual: 25},
			{ID: 3, Nombre: "Mantequilla", Descripcion: "Mantequilla sin sal", CostoUnitario: 8000, CantidadActual: 15},
		},
		insumosProveedor: []InsumoProveedor{
			{InsumoID: 1, Nombre: "Harina de Trigo", Descripcion: "Harina premium para panificación", CostoUnitario: 2500,
				FechaVencimiento: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), CantidadDisponible: 50, ProveedorID: 2, NombreProveedor: "Harinas del Valle"},
		},
		pedidos: []PedidoInsumo{
			{ID: 1, Nombre: "Pedido Semanal", Descripcion: "Insumos para la semana", ProveedorID: 1, NombreProveedor: "Distribuidora Central",
				CostoTotal: 150000, FechaPedido: NowTimeFunc(), EsPagable: true, Estado: PedidoPendiente},
		},
		detalles: []DetallePedido{
			{ID: 1, PedidoID: 1, InsumoID: 1, NombreInsumo: "Harina de Trigo", CantidadInsumo: 10, CostoSubtotal: 25000},
		},
		reportes: []Reporte{
			{ID: 1, Razon: "Producto defectuoso", EsDevolucion: true, FechaDevolucion: NowTimeFunc(), DetalleID: 1},
		},
		recetas: []Receta{
			{ID: 1, Nombre: "Pan Integral", Descripcion: "Receta básica de pan integral", CantidadInsumo: 500,
				InsumoID: 1, ProductoID: 1, NombreInsumo: "Harina de Trigo", NombreProducto: "Pan Artesanal"},
		},
		productos: []Producto{
			{ID: 1, Nombre: "Pan Artesanal", Descripcion: "Pan artesanal tradicional", CostoUnitario: 5000,
				FechaVencimiento: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Categoria: "Panadería"},
			{ID: 2, Nombre: "Torta de Chocolate", Descripcion: "Torta de chocolate con cobertura", CostoUnitario: 25000,
				FechaVencimiento: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Categoria: "Repostería"},
		},
	}
}

// Proveedores lists all suppliers.
func (s *Service) Proveedores() []Proveedor {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Proveedor(nil), s.proveedores...)
}

// AddProveedor registers a supplier, assigning the next id.
func (s *Service) AddProveedor(p Proveedor) (Proveedor, error) {
	if p.Nombre == "" {
		return Proveedor{}, MissingNameErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	p.ID = nextID(s.proveedores, func(x Proveedor) int64 { return x.ID })
	s.proveedores = append(s.proveedores, p)
	return p, nil
}

// UpdateProveedor replaces the supplier with p's id.
func (s *Service) UpdateProveedor(p Proveedor) error {
	if p.Nombre == "" {
		return MissingNameErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.proveedores {
		if s.proveedores[i].ID == p.ID {
			s.proveedores[i] = p
			return nil
		}
	}
	return NotFoundErr
}

// DeleteProveedor removes a supplier.
func (s *Service) DeleteProveedor(id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.proveedores {
		if s.proveedores[i].ID == id {
			s.proveedores = append(s.proveedores[:i], s.proveedores[i+1:]...)
			return nil
		}
	}
	return NotFoundErr
}

// Insumos lists the ingredient inventory.
func (s *Service) Insumos() []Insumo {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Insumo(nil), s.insumos...)
}

// AddInsumo registers an ingredient.
func (s *Service) AddInsumo(i Insumo) (Insumo, error) {
	if i.Nombre == "" {
		return Insumo{}, MissingNameErr
	}
	if i.CostoUnitario < 0 {
		return Insumo{}, InvalidCostErr
	}
	if i.CantidadActual < 0 {
		return Insumo{}, InvalidQuantityErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	i.ID = nextID(s.insumos, func(x Insumo) int64 { return x.ID })
	s.insumos = append(s.insumos, i)
	return i, nil
}

// UpdateInsumo replaces the ingredient with i's id.
func (s *Service) UpdateInsumo(i Insumo) error {
	if i.CostoUnitario < 0 {
		return InvalidCostErr
	}
	if i.CantidadActual < 0 {
		return InvalidQuantityErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for idx := range s.insumos {
		if s.insumos[idx].ID == i.ID {
			s.insumos[idx] = i
			return nil
		}
	}
	return NotFoundErr
}

// DeleteInsumo removes an ingredient.
func (s *Service) DeleteInsumo(id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.insumos {
		if s.insumos[i].ID == id {
			s.insumos = append(s.insumos[:i], s.insumos[i+1:]...)
			return nil
		}
	}
	return NotFoundErr
}

// Productos lists the finished products.
func (s *Service) Productos() []Producto {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Producto(nil), s.productos...)
}

// AddProducto registers a finished product.
func (s *Service) AddProducto(p Producto) (Producto, error) {
	if p.Nombre == "" {
		return Producto{}, MissingNameErr
	}
	if p.CostoUnitario < 0 {
		return Producto{}, InvalidCostErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	p.ID = nextID(s.productos, func(x Producto) int64 { return x.ID })
	s.productos = append(s.productos, p)
	return p, nil
}

// UpdateProducto replaces the product with p's id.
func (s *Service) UpdateProducto(p Producto) error {
	if p.CostoUnitario < 0 {
		return InvalidCostErr
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.productos {
		if s.productos[i].ID == p.ID {
			s.productos[i] = p
			return nil
		}
	}
	return NotFoundErr
}

// DeleteProducto removes a product.
func (s *Service) DeleteProducto(id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.productos {
		if s.productos[i].ID == id {
			s.productos = append(s.productos[:i], s.productos[i+1:]...)
			return nil
		}
	}
	return NotFoundErr
}

// Recetas lists the recipes.
func (s *Service) Recetas() []Receta {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Receta(nil), s.recetas...)
}

// AddReceta registers a recipe linking an existing ingredient to an
// existing product.
func (s *Service) AddReceta(r Receta) (Receta, error) {
	if r.Nombre == "" {
		return Receta{}, MissingNameErr
	}
	if r.CantidadInsumo <= 0 {
		return Receta{}, InvalidQuantityErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	insumo := findByID(s.insumos, r.InsumoID, func(x Insumo) int64 { return x.ID })
	if insumo == nil {
		return Receta{}, UnknownInsumoErr
	}
	producto := findByID(s.productos, r.ProductoID, func(x Producto) int64 { return x.ID })
	if producto == nil {
		return Receta{}, UnknownProductoErr
	}

	r.NombreInsumo = insumo.Nombre
	r.NombreProducto = producto.Nombre
	r.ID = nextID(s.recetas, func(x Receta) int64 { return x.ID })
	s.recetas = append(s.recetas, r)
	return r, nil
}

// DeleteReceta removes a recipe.
func (s *Service) DeleteReceta(id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.recetas {
		if s.recetas[i].ID == id {
			s.recetas = append(s.recetas[:i], s.recetas[i+1:]...)
			return nil
		}
	}
	return NotFoundErr
}

// InsumosProveedor lists supplier catalog entries.
func (s *Service) InsumosProveedor() []InsumoProveedor {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]InsumoProveedor(nil), s.insumosProveedor...)
}

// AddInsumoProveedor links an existing ingredient to an existing supplier.
func (s *Service) AddInsumoProveedor(ip InsumoProveedor) (InsumoProveedor, error) {
	if ip.CantidadDisponible < 0 {
		return InsumoProveedor{}, InvalidQuantityErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	proveedor := findByID(s.proveedores, ip.ProveedorID, func(x Proveedor) int64 { return x.ID })
	if proveedor == nil {
		return InsumoProveedor{}, UnknownProveedorErr
	}
	insumo := findByID(s.insumos, ip.InsumoID, func(x Insumo) int64 { return x.ID })
	if insumo == nil {
		return InsumoProveedor{}, UnknownInsumoErr
	}

	ip.NombreProveedor = proveedor.Nombre
	if ip.Nombre == "" {
		ip.Nombre = insumo.Nombre
	}
	s.insumosProveedor = append(s.insumosProveedor, ip)
	return ip, nil
}

// Pedidos lists incoming supplier orders.
func (s *Service) Pedidos() []PedidoInsumo {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]PedidoInsumo(nil), s.pedidos...)
}

// DetallesDePedido lists the lines of one supplier order.
func (s *Service) DetallesDePedido(pedidoID int64) []DetallePedido {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var lines []DetallePedido
	for _, d := range s.detalles {
		if d.PedidoID == pedidoID {
			lines = append(lines, d)
		}
	}
	return lines
}

// MarkPedidoRecibido records that a warehouse auxiliary received the
// delivery. Only pending or in-transit orders can be received.
func (s *Service) MarkPedidoRecibido(pedidoID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.pedidos {
		if s.pedidos[i].ID != pedidoID {
			continue
		}
		if s.pedidos[i].Estado != PedidoPendiente && s.pedidos[i].Estado != PedidoEnTransito {
			return WrongEstadoErr
		}
		s.pedidos[i].Estado = PedidoRecibido
		return nil
	}
	return NotFoundErr
}

// VerifyPedido records that the delivery's content was checked against the
// order. Only received orders can be verified.
func (s *Service) VerifyPedido(pedidoID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range s.pedidos {
		if s.pedidos[i].ID != pedidoID {
			continue
		}
		if s.pedidos[i].Estado != PedidoRecibido {
			return WrongEstadoErr
		}
		s.pedidos[i].Estado = PedidoVerificado
		return nil
	}
	return NotFoundErr
}

// FileReport files a supplier report against one order line. For a
// devolución the line is marked returned; a line can be returned once.
func (s *Service) FileReport(detalleID int64, razon string, esDevolucion bool) (Reporte, error) {
	if razon == "" {
		return Reporte{}, MissingNameErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	var detalle *DetallePedido
	for i := range s.detalles {
		if s.detalles[i].ID == detalleID {
			detalle = &s.detalles[i]
			break
		}
	}
	if detalle == nil {
		return Reporte{}, NotFoundErr
	}

	if esDevolucion {
		if detalle.EsDevuelto {
			return Reporte{}, AlreadyReturnedErr
		}
		detalle.EsDevuelto = true
	}

	reporte := Reporte{
		ID:              nextID(s.reportes, func(x Reporte) int64 { return x.ID }),
		Razon:           razon,
		EsDevolucion:    esDevolucion,
		FechaDevolucion: NowTimeFunc(),
		DetalleID:       detalleID,
	}
	s.reportes = append(s.reportes, reporte)
	return reporte, nil
}

// Reportes lists the filed supplier reports.
func (s *Service) Reportes() []Reporte {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Reporte(nil), s.reportes...)
}

func nextID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, item := range items {
		if v := id(item); v > max {
			max = v
		}
	}
	return max + 1
}

func findByID[T any](items []T, want int64, id func(T) int64) *T {
	for i := range items {
		if id(items[i]) == want {
			return &items[i]
		}
	}
	return nil
}
