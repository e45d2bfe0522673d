package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	fk := &pq.Error{Code: "23503", Constraint: "posts_author_id_fkey"}
	unique := &pq.Error{Code: "23505", Constraint: "categories_name_key"}
	check := &pq.Error{Code: "23514", Constraint: "products_price_check"}

	testCases := []struct {
		name string
		fn   func(error, string) bool
		err  error
		arg  string
		want bool
	}{
		{name: "foreign key match", fn: ForeignKeyError, err: fk, arg: "posts_author_id_fkey", want: true},
		{name: "foreign key any constraint", fn: ForeignKeyError, err: fk, arg: "", want: true},
		{name: "foreign key other constraint", fn: ForeignKeyError, err: fk, arg: "comments_post_id_fkey", want: false},
		{name: "foreign key wrapped", fn: ForeignKeyError, err: fmt.Errorf("insert: %w", fk), arg: "posts_author_id_fkey", want: true},
		{name: "unique match", fn: UniqueError, err: unique, arg: "categories_name_key", want: true},
		{name: "unique on fk error", fn: UniqueError, err: fk, arg: "", want: false},
		{name: "check match", fn: CheckError, err: check, arg: "products_price_check", want: true},
		{name: "plain error", fn: CheckError, err: errors.New("boom"), arg: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.err, tc.arg))
		})
	}
}
