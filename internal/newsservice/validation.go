package newsservice

import (
	"github.com/sushihentaime/newsportal/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 128), "title", "must be between 1 and 128 characters long")
}

func validateText(v *common.Validator, text string) {
	v.Check(text != "", "text", "must be provided")
}

func validatePostType(v *common.Validator, t PostType) {
	v.Check(v.PermittedValue(string(t), string(PostTypeNews), string(PostTypeArticle)), "post_type", "must be NW or AR")
}

func validateCategoryName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 128), "name", "must be between 1 and 128 characters long")
}

func validateCategoryIDs(v *common.Validator, ids []int) {
	for _, id := range ids {
		if id <= 0 {
			v.AddError("categories", "must only contain ids greater than zero")
			return
		}
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
