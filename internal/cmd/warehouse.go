package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// warehouseCmd groups the auxiliar (warehouse staff) operations. They work
// on the local inventory service and require a staff session.
var warehouseCmd = &cobra.Command{
	Use:     "warehouse",
	Aliases: []string{"wh"},
	Short:   "Warehouse operations (staff only)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initApp(cmd, args); err != nil {
			return err
		}
		if err := requireSession(); err != nil {
			return err
		}
		if front.Auth.CurrentUser().Rol == "CLIENTE" {
			return fmt.Errorf("warehouse commands require a staff account")
		}
		front.Activity()
		return nil
	},
}

var suppliersListCmd = &cobra.Command{
	Use:   "suppliers",
	Short: "List registered suppliers",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		rows := [][]string{}
		for _, p := range front.Admin.Proveedores() {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10), p.Nombre, p.Telefono, p.Email,
			})
		}
		fmt.Print(renderTable([]string{"ID", "NAME", "PHONE", "EMAIL"}, rows))
		return nil
	},
}

var ingredientsListCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List inventory ingredients",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		rows := [][]string{}
		for _, i := range front.Admin.Insumos() {
			rows = append(rows, []string{
				strconv.FormatInt(i.ID, 10), i.Nombre, strconv.Itoa(i.CantidadActual), money(i.CostoUnitario),
			})
		}
		fmt.Print(renderTable([]string{"ID", "NAME", "ON HAND", "UNIT COST"}, rows))
		return nil
	},
}

var supplierOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List supplier orders",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		rows := [][]string{}
		for _, p := range front.Admin.Pedidos() {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				p.NombreProveedor,
				string(p.Estado),
				p.FechaPedido.Format("2006-01-02"),
				money(p.CostoTotal),
			})
		}
		fmt.Print(renderTable([]string{"ID", "SUPPLIER", "STATE", "ORDERED", "TOTAL"}, rows))
		return nil
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive ORDER_ID",
	Short: "Mark a supplier order as received",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := front.Admin.MarkPedidoRecibido(id); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("Order marked as received."))
		return nil
	},
}

var verifyOrderCmd = &cobra.Command{
	Use:   "check ORDER_ID",
	Short: "Verify a received supplier order",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := front.Admin.VerifyPedido(id); err != nil {
			return err
		}

		fmt.Println(okStyle.Render("Order verified."))
		for _, d := range front.Admin.DetallesDePedido(id) {
			fmt.Printf("  %s x%d (%s)\n", d.NombreInsumo, d.CantidadInsumo, money(d.CostoSubtotal))
		}
		return nil
	},
}

var (
	reportRazon  string
	reportReturn bool
)

var reportCmd = &cobra.Command{
	Use:   "report DETAIL_ID",
	Short: "File a problem report for an order line",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid detail id %q", args[0])
		}
		reporte, err := front.Admin.FileReport(id, reportRazon, reportReturn)
		if err != nil {
			return err
		}
		fmt.Printf("Report #%d filed.\n", reporte.ID)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportRazon, "reason", "", "what went wrong with the line")
	reportCmd.Flags().BoolVar(&reportReturn, "return", false, "file the report as a return")
	_ = reportCmd.MarkFlagRequired("reason")

	warehouseCmd.AddCommand(suppliersListCmd, ingredientsListCmd, supplierOrdersCmd, receiveCmd, verifyOrderCmd, reportCmd)
	rootCmd.AddCommand(warehouseCmd)
}
