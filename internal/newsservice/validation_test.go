package newsservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/newsportal/internal/common"
)

func TestValidateTitle(t *testing.T) {
	testCases := []struct {
		title string
		valid bool
	}{
		{title: "", valid: false},
		{title: "a", valid: true},
		{title: "Новости спорта", valid: true},
		{title: strings.Repeat("t", 128), valid: true},
		{title: strings.Repeat("t", 129), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			v := common.NewValidator()
			validateTitle(v, tc.title)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePostType(t *testing.T) {
	testCases := []struct {
		postType PostType
		valid    bool
	}{
		{postType: PostTypeNews, valid: true},
		{postType: PostTypeArticle, valid: true},
		{postType: "", valid: false},
		{postType: "XX", valid: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.postType), func(t *testing.T) {
			v := common.NewValidator()
			validatePostType(v, tc.postType)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateCategoryIDs(t *testing.T) {
	v := common.NewValidator()
	validateCategoryIDs(v, []int{1, 2, 3})
	assert.True(t, v.Valid())

	v = common.NewValidator()
	validateCategoryIDs(v, []int{1, 0})
	assert.Equal(t, map[string]string{"categories": "must only contain ids greater than zero"}, v.Errors)
}

func TestValidateCategoryName(t *testing.T) {
	v := common.NewValidator()
	validateCategoryName(v, "")
	assert.Equal(t, "must be provided", v.Errors["name"])

	v = common.NewValidator()
	validateCategoryName(v, "Sport")
	assert.True(t, v.Valid())
}
