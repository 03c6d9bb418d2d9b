package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products [ID]",
	Short: "Browse the product catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		front.Activity()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			producto, err := front.API.Producto(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(titleStyle.Render(producto.Nombre))
			fmt.Printf("  %s %s\n", mutedStyle.Render("Description:"), producto.Descripcion)
			fmt.Printf("  %s %s\n", mutedStyle.Render("Price:"), money(producto.CostoUnitario))
			if producto.CategoriaNombre != "" {
				fmt.Printf("  %s %s\n", mutedStyle.Render("Category:"), producto.CategoriaNombre)
			}
			return nil
		}

		productos, err := front.API.Productos(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(productos))
		for _, p := range productos {
			rows = append(rows, []string{
				strconv.FormatInt(p.IDProducto, 10), p.Nombre, p.CategoriaNombre, money(p.CostoUnitario),
			})
		}
		fmt.Print(renderTable([]string{"ID", "NAME", "CATEGORY", "PRICE"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}
