package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/newsservice"
)

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.newsService.GetCategories(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var input createCategoryRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category, err := app.newsService.CreateCategory(r.Context(), input.Name)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, newsservice.ErrDuplicateCategory):
			app.failedValidationErrorResponse(w, r, map[string]string{"name": "a category with this name already exists"})
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"category": category}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.newsService.DeleteCategory(r.Context(), id)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "category deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	subscription, err := app.newsService.Subscribe(r.Context(), user.ID, id)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, newsservice.ErrCategoryForeignKey):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"subscription": subscription}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.newsService.Unsubscribe(r.Context(), user.ID, id)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "unsubscribed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
