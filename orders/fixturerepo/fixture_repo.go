// Package fixturerepo serves the hard-coded order history the storefront
// ships while the backend's order endpoints are not wired up.
package fixturerepo

import (
	"errors"
	"sync"
	"time"

	"github.com/oldbaker/go-storefront/orders"
)

var _ orders.Repo = (*FixtureRepo)(nil)

type FixtureRepo struct {
	lock    sync.RWMutex
	pedidos []*orders.Pedido
}

// NewFixtureRepo returns a repo seeded with the stand-in order history.
func NewFixtureRepo() *FixtureRepo {
	return &FixtureRepo{
		pedidos: []*orders.Pedido{
			{
				ID:     1001,
				Fecha:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Total:  25000,
				Estado: orders.EstadoCompletado,
				Productos: []orders.Linea{
					{Nombre: "Baguette", Cantidad: 2, PrecioUnitario: 3500},
					{Nombre: "Croissant", Cantidad: 4, PrecioUnitario: 4500},
				},
			},
			{
				ID:     1002,
				Fecha:  time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
				Total:  15000,
				Estado: orders.EstadoEnProceso,
				Productos: []orders.Linea{
					{Nombre: "Pan de Queso", Cantidad: 6, PrecioUnitario: 2500},
				},
			},
			{
				ID:     1003,
				Fecha:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				Total:  42000,
				Estado: orders.EstadoCompletado,
				Productos: []orders.Linea{
					{Nombre: "Pan Integral", Cantidad: 3, PrecioUnitario: 3200},
					{Nombre: "Ciabatta", Cantidad: 5, PrecioUnitario: 3800},
					{Nombre: "Rollos de Canela", Cantidad: 4, PrecioUnitario: 4000},
				},
			},
		},
	}
}

// List returns every fixture order. The fixtures are not segmented per
// user, matching the stand-in data the web client shows.
func (r *FixtureRepo) List(string) ([]*orders.Pedido, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]*orders.Pedido(nil), r.pedidos...), nil
}

func (r *FixtureRepo) Get(_ string, id int64) (*orders.Pedido, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	for _, pedido := range r.pedidos {
		if pedido.ID == id {
			return pedido, nil
		}
	}
	return nil, errors.New("pedido not found")
}
