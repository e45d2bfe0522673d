package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/newsservice"
)

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readPageParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	postType := app.readPostTypeParam(r)

	posts, err := app.newsService.GetPosts(r.Context(), postType, limit, offset)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createPostRequest struct {
	Type       string `json:"post_type"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Categories []int  `json:"categories"`
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input createPostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	post, err := app.newsService.CreatePost(r.Context(), &newsservice.CreatePostRequest{
		UserID:     user.ID,
		Type:       newsservice.PostType(input.Type),
		Title:      input.Title,
		Text:       input.Text,
		Categories: input.Categories,
	})
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, newsservice.ErrAuthorNotFound):
			app.notPermittedResponse(w, r)
		case errors.Is(err, newsservice.ErrCategoryForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"categories": "must only contain existing categories"})
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/posts/%d", post.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.newsService.GetPostByID(r.Context(), id)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) likePostHandler(w http.ResponseWriter, r *http.Request) {
	app.reactionHandler(w, r, app.newsService.LikePost)
}

func (app *application) dislikePostHandler(w http.ResponseWriter, r *http.Request) {
	app.reactionHandler(w, r, app.newsService.DislikePost)
}

func (app *application) likeCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.reactionHandler(w, r, app.newsService.LikeComment)
}

func (app *application) dislikeCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.reactionHandler(w, r, app.newsService.DislikeComment)
}

// reactionHandler applies react to the :id parameter and responds with the new rating.
func (app *application) reactionHandler(w http.ResponseWriter, r *http.Request, react func(ctx context.Context, id int) (int, error)) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	rating, err := react(r.Context(), id)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"id": id, "rating": rating}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.newsService.GetCommentsByPostID(r.Context(), id)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	comment, err := app.newsService.CreateComment(r.Context(), id, user.ID, input.Text)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.Is(err, newsservice.ErrPostForeignKey):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
