package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/newsportal/internal/metrics"
	"github.com/sushihentaime/newsportal/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// accounts
	router.HandlerFunc(http.MethodGet, "/signup", app.signupFormHandler)
	router.HandlerFunc(http.MethodPost, "/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPut, "/accounts/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/accounts/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/accounts/logout", app.requireAuthUser(app.logoutUserHandler))
	router.HandlerFunc(http.MethodPost, "/upgrade/", app.requireActivatedUser(app.upgradeUserHandler))

	// categories
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/categories", app.requirePermission(app.createCategoryHandler, userservice.PermissionWritePost))
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:id", app.requirePermission(app.deleteCategoryHandler, userservice.PermissionWritePost))
	router.HandlerFunc(http.MethodPost, "/v1/categories/:id/subscription", app.requireActivatedUser(app.subscribeHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:id/subscription", app.requireActivatedUser(app.unsubscribeHandler))

	// posts and comments
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts", app.requirePermission(app.createPostHandler, userservice.PermissionWritePost))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id", app.showPostHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/like", app.requireActivatedUser(app.likePostHandler))
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/dislike", app.requireActivatedUser(app.dislikePostHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/comments", app.requireActivatedUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodPost, "/v1/comments/:id/like", app.requireActivatedUser(app.likeCommentHandler))
	router.HandlerFunc(http.MethodPost, "/v1/comments/:id/dislike", app.requireActivatedUser(app.dislikeCommentHandler))

	// authors
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodPost, "/v1/authors/:id/rating", app.requireActivatedUser(app.updateAuthorRatingHandler))

	// products
	router.HandlerFunc(http.MethodGet, "/v1/products", app.listProductsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/products", app.requirePermission(app.createProductHandler, userservice.PermissionWritePost))
	router.HandlerFunc(http.MethodGet, "/v1/products/:id", app.showProductHandler)
	router.HandlerFunc(http.MethodPut, "/v1/products/:id", app.requirePermission(app.updateProductHandler, userservice.PermissionWritePost))

	return app.chain(router)
}

// chain wraps h with the middleware run on every request. logRequest is outermost so
// a recovered panic is still logged and counted as a 500.
func (app *application) chain(h http.Handler) http.Handler {
	return app.logRequest(app.recoverPanic(app.enableCORS(app.rateLimit(app.authenticate(h)))))
}
