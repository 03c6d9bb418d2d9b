package orders

// Repo provides access to a customer's order history.
type Repo interface {
	List(userEmail string) ([]*Pedido, error)
	Get(userEmail string, id int64) (*Pedido, error)
}
