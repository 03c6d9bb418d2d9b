package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oldbaker/go-storefront/cart"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the cart contents",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		front.Activity()

		items := front.Cart.Items()
		if len(items) == 0 {
			fmt.Println(mutedStyle.Render("The cart is empty."))
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				strconv.FormatInt(item.ProductID, 10),
				item.Name,
				strconv.Itoa(item.Quantity),
				money(item.UnitPrice),
				money(item.UnitPrice * float64(item.Quantity)),
			})
		}
		fmt.Print(renderTable([]string{"ID", "PRODUCT", "QTY", "UNIT", "SUBTOTAL"}, rows))
		fmt.Printf("\n%s %s\n", headerStyle.Render("Total:"), money(front.Cart.Total()))
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Add one unit of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		front.Activity()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		producto, err := front.API.Producto(cmd.Context(), id)
		if err != nil {
			return err
		}

		front.Cart.AddItem(cart.Item{
			ProductID: producto.IDProducto,
			Name:      producto.Nombre,
			UnitPrice: producto.CostoUnitario,
			Image:     producto.URL,
		})
		fmt.Printf("Added %s. Cart now holds %d item(s).\n", producto.Nombre, front.Cart.ItemCount())
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set PRODUCT_ID QUANTITY",
	Short: "Set a line's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		front.Activity()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		front.Cart.UpdateQuantity(id, quantity)
		fmt.Printf("Cart now holds %d item(s).\n", front.Cart.ItemCount())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product line",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		front.Activity()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		front.Cart.RemoveItem(id)
		fmt.Printf("Cart now holds %d item(s).\n", front.Cart.ItemCount())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		front.Activity()
		front.Cart.Clear()
		fmt.Println("Cart emptied.")
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
