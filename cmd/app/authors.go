package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/newsportal/internal/common"
)

func (app *application) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.newsService.GetAuthorByID(r.Context(), id)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateAuthorRatingHandler recomputes and stores the author rating.
func (app *application) updateAuthorRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.newsService.UpdateAuthorRating(r.Context(), id)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
