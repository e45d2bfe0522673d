package productservice

import "github.com/sushihentaime/newsportal/internal/common"

func validateProduct(v *common.Validator, p *Product) {
	v.Check(p.Name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(p.Name, 1, 200), "name", "must be between 1 and 200 characters long")
	v.Check(p.Price >= 0, "price", "must not be negative")
	v.Check(p.Quantity >= 0, "quantity", "must not be negative")
	validateInt(v, p.CategoryID, "category_id")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
