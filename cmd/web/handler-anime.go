package main

import (
	"net/http"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
)

type animeTemplateData struct {
	BaseTemplateData

	Enabled        bool
	Query          string
	Recommendation string
}

func (app *application) animePage(w http.ResponseWriter, r *http.Request) {
	data := animeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Enabled:          app.recommender != nil,
		Query:            "",
		Recommendation:   "",
	}
	app.render(w, r, http.StatusOK, "anime", data)
}

func (app *application) animeRecommend(w http.ResponseWriter, r *http.Request) {
	data := animeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Enabled:          app.recommender != nil,
		Query:            strings.TrimSpace(r.PostFormValue("query")),
		Recommendation:   "",
	}
	if app.recommender == nil || data.Query == "" {
		app.render(w, r, http.StatusOK, "anime", data)
		return
	}

	recommendation, err := app.recommender.Recommend(r.Context(), data.Query)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "recommend anime"))
		return
	}
	data.Recommendation = recommendation
	app.render(w, r, http.StatusOK, "anime", data)
}
