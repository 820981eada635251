package main

import (
	"net/http"

	"github.com/cropsage/cropsage/internal/celeb"
)

type celebrityTemplateData struct {
	BaseTemplateData

	Result  *celeb.Result
	Warning string
}

func (app *application) celebrityPage(w http.ResponseWriter, r *http.Request) {
	data := celebrityTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Result:           nil,
		Warning:          "",
	}
	app.render(w, r, http.StatusOK, "celebrity", data)
}

func (app *application) celebrityAnalyze(w http.ResponseWriter, r *http.Request) {
	data := celebrityTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Result:           nil,
		Warning:          "",
	}

	image, mimeType, err := app.readUploadedImage(r, "photo")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if !allowedImageTypes[mimeType] {
		data.Warning = invalidImageWarning
		app.render(w, r, http.StatusOK, "celebrity", data)
		return
	}

	result := app.celebDetector.Identify(r.Context(), image, mimeType)
	data.Result = &result
	app.render(w, r, http.StatusOK, "celebrity", data)
}
