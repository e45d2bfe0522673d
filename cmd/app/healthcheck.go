package main

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// healthCheckHandler reports the build info and whether the database answers a ping.
// An unreachable database turns the response into a 503.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "available", http.StatusOK
	database := "unchecked"

	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		database = "available"
		if err := app.db.PingContext(ctx); err != nil {
			app.logError(r, err)
			status, code, database = "degraded", http.StatusServiceUnavailable, "unavailable"
		}
	}

	env := envelope{
		"status":   status,
		"database": database,
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
		},
	}

	if err := app.writeJSON(w, code, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
