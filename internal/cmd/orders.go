package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders [ID]",
	Short: "Show your order history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		front.Activity()
		email := front.Auth.CurrentUser().Email

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			pedido, err := front.Orders.Get(email, id)
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("Order #%d", pedido.ID)))
			fmt.Printf("  %s %s\n", mutedStyle.Render("Date:"), pedido.Fecha.Format("2006-01-02"))
			fmt.Printf("  %s %s\n", mutedStyle.Render("State:"), string(pedido.Estado))
			rows := make([][]string, 0, len(pedido.Productos))
			for _, linea := range pedido.Productos {
				rows = append(rows, []string{
					linea.Nombre, strconv.Itoa(linea.Cantidad), money(linea.PrecioUnitario),
				})
			}
			fmt.Print(renderTable([]string{"PRODUCT", "QTY", "UNIT"}, rows))
			fmt.Printf("\n%s %s\n", headerStyle.Render("Total:"), money(pedido.Total))
			return nil
		}

		pedidos, err := front.Orders.List(email)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(pedidos))
		for _, p := range pedidos {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				p.Fecha.Format("2006-01-02"),
				string(p.Estado),
				strconv.Itoa(len(p.Productos)),
				money(p.Total),
			})
		}
		fmt.Print(renderTable([]string{"ID", "DATE", "STATE", "LINES", "TOTAL"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
