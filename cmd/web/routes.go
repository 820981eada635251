package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	// All form pages share the session cookie, CSRF protection and the
	// common template context.
	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /analyze", session.ThenFunc(app.analyze))
	mux.Handle("GET /details", session.ThenFunc(app.detailsForm))
	mux.Handle("POST /details", session.ThenFunc(app.detailsSubmit))
	mux.Handle("GET /advisor", session.ThenFunc(app.advisorPage))
	mux.Handle("POST /advisor/answer", session.ThenFunc(app.advisorAnswer))
	mux.Handle("POST /advisor/question", session.ThenFunc(app.advisorQuestion))
	mux.Handle("POST /reset", session.ThenFunc(app.reset))

	mux.Handle("GET /celebrity", session.ThenFunc(app.celebrityPage))
	mux.Handle("POST /celebrity", session.ThenFunc(app.celebrityAnalyze))
	mux.Handle("GET /anime", session.ThenFunc(app.animePage))
	mux.Handle("POST /anime", session.ThenFunc(app.animeRecommend))

	mux.HandleFunc("/", app.notFound)

	handler := timeoutHandler(mux, defaultTimeout)
	return app.recoverPanic(app.logRequest(app.secureHeaders(app.limitRequestSize(handler))))
}
