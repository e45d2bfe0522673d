package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/productservice"
)

type productRequest struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	CategoryID int     `json:"category_id"`
}

func (in productRequest) product(id int) *productservice.Product {
	return &productservice.Product{
		ID:         id,
		Name:       in.Name,
		Price:      in.Price,
		Quantity:   in.Quantity,
		CategoryID: in.CategoryID,
	}
}

// productErrorResponse maps product service errors shared by create and update.
func (app *application) productErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr common.ValidationError
	switch {
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, productservice.ErrCategoryForeignKey):
		app.failedValidationErrorResponse(w, r, map[string]string{"category_id": "category does not exist"})
	case errors.As(err, &verr):
		app.failedValidationErrorResponse(w, r, verr.Errors)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readPageParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	products, err := app.productService.GetProducts(r.Context(), limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"products": products}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var input productRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	product := input.product(0)

	err = app.productService.CreateProduct(r.Context(), product)
	if err != nil {
		app.productErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/products/%d", product.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"product": product}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	product, err := app.productService.GetProduct(r.Context(), id)
	if err != nil {
		app.productErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"product": product}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input productRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	product := input.product(id)

	err = app.productService.UpdateProduct(r.Context(), product)
	if err != nil {
		app.productErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"product": product}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
