package suppliers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/suppliers"
)

func TestAddProveedorAssignsNextID(t *testing.T) {
	s := suppliers.NewService()

	added, err := s.AddProveedor(suppliers.Proveedor{Nombre: "Lácteos La Sabana", Email: "ventas@lacteos.com"})
	require.NoError(t, err)
	require.EqualValues(t, 3, added.ID)
	require.Len(t, s.Proveedores(), 3)

	_, err = s.AddProveedor(suppliers.Proveedor{})
	require.ErrorIs(t, err, suppliers.MissingNameErr)
}

func TestUpdateAndDeleteProveedor(t *testing.T) {
	s := suppliers.NewService()

	require.NoError(t, s.UpdateProveedor(suppliers.Proveedor{ID: 1, Nombre: "Distribuidora Central SA", Telefono: "+57 300 000 0000"}))
	require.Equal(t, "Distribuidora Central SA", s.Proveedores()[0].Nombre)

	require.NoError(t, s.DeleteProveedor(2))
	require.Len(t, s.Proveedores(), 1)

	require.ErrorIs(t, s.DeleteProveedor(99), suppliers.NotFoundErr)
	require.ErrorIs(t, s.UpdateProveedor(suppliers.Proveedor{ID: 99, Nombre: "X"}), suppliers.NotFoundErr)
}

func TestInsumoValidation(t *testing.T) {
	s := suppliers.NewService()

	_, err := s.AddInsumo(suppliers.Insumo{Nombre: "Levadura", CostoUnitario: -1})
	require.ErrorIs(t, err, suppliers.InvalidCostErr)

	_, err = s.AddInsumo(suppliers.Insumo{Nombre: "Levadura", CantidadActual: -5})
	require.ErrorIs(t, err, suppliers.InvalidQuantityErr)

	added, err := s.AddInsumo(suppliers.Insumo{Nombre: "Levadura", CostoUnitario: 1200, CantidadActual: 10})
	require.NoError(t, err)
	require.EqualValues(t, 4, added.ID)
}

func TestAddRecetaResolvesNames(t *testing.T) {
	s := suppliers.NewService()

	receta, err := s.AddReceta(suppliers.Receta{Nombre: "Torta base", CantidadInsumo: 300, InsumoID: 2, ProductoID: 2})
	require.NoError(t, err)
	require.Equal(t, "Azúcar Blanca", receta.NombreInsumo)
	require.Equal(t, "Torta de Chocolate", receta.NombreProducto)

	_, err = s.AddReceta(suppliers.Receta{Nombre: "X", CantidadInsumo: 1, InsumoID: 99, ProductoID: 1})
	require.ErrorIs(t, err, suppliers.UnknownInsumoErr)

	_, err = s.AddReceta(suppliers.Receta{Nombre: "X", CantidadInsumo: 0, InsumoID: 1, ProductoID: 1})
	require.ErrorIs(t, err, suppliers.InvalidQuantityErr)
}

func TestAddInsumoProveedorChecksReferences(t *testing.T) {
	s := suppliers.NewService()

	ip, err := s.AddInsumoProveedor(suppliers.InsumoProveedor{InsumoID: 3, ProveedorID: 1, CantidadDisponible: 20})
	require.NoError(t, err)
	require.Equal(t, "Distribuidora Central", ip.NombreProveedor)
	require.Equal(t, "Mantequilla", ip.Nombre)

	_, err = s.AddInsumoProveedor(suppliers.InsumoProveedor{InsumoID: 1, ProveedorID: 99})
	require.ErrorIs(t, err, suppliers.UnknownProveedorErr)
}

func TestPedidoVerificationFlow(t *testing.T) {
	s := suppliers.NewService()

	// The fixture order starts pending: verification requires reception.
	require.ErrorIs(t, s.VerifyPedido(1), suppliers.WrongEstadoErr)

	require.NoError(t, s.MarkPedidoRecibido(1))
	require.Equal(t, suppliers.PedidoRecibido, s.Pedidos()[0].Estado)

	// Receiving twice is rejected.
	require.ErrorIs(t, s.MarkPedidoRecibido(1), suppliers.WrongEstadoErr)

	require.NoError(t, s.VerifyPedido(1))
	require.Equal(t, suppliers.PedidoVerificado, s.Pedidos()[0].Estado)

	require.ErrorIs(t, s.MarkPedidoRecibido(99), suppliers.NotFoundErr)
}

func TestFileReportMarksReturn(t *testing.T) {
	s := suppliers.NewService()

	reporte, err := s.FileReport(1, "Empaque roto", true)
	require.NoError(t, err)
	require.True(t, reporte.EsDevolucion)
	require.EqualValues(t, 2, reporte.ID)

	detalles := s.DetallesDePedido(1)
	require.Len(t, detalles, 1)
	require.True(t, detalles[0].EsDevuelto)

	// A line can only be returned once.
	_, err = s.FileReport(1, "Otra vez", true)
	require.ErrorIs(t, err, suppliers.AlreadyReturnedErr)

	// A plain report without devolución is still accepted.
	_, err = s.FileReport(1, "Llegó tarde", false)
	require.NoError(t, err)
	require.Len(t, s.Reportes(), 3)

	_, err = s.FileReport(1, "", true)
	require.ErrorIs(t, err, suppliers.MissingNameErr)
}
