package menu

// Option identifies a menu action independently of the number it is shown with.
type Option int

const (
	ListProducts Option = iota + 1
	AddProduct
	DeleteProduct
	BuyProduct
	ViewCart
	ClearCart
	SaveCart
	RestoreCart
	LoginAdmin
	LoginUser
	Exit
)

var labels = map[Option]string{
	ListProducts:  "List products",
	AddProduct:    "Add product",
	DeleteProduct: "Delete product",
	BuyProduct:    "Buy product",
	ViewCart:      "View cart",
	ClearCart:     "Clear cart",
	SaveCart:      "Save cart",
	RestoreCart:   "Restore cart",
	LoginAdmin:    "Admin",
	LoginUser:     "User",
	Exit:          "Exit",
}

func (o Option) String() string {
	if l, ok := labels[o]; ok {
		return l
	}
	return "Unknown"
}

// Terminal reports whether selecting o ends the run loop.
func (o Option) Terminal() bool { return o == Exit }
