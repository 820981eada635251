package main

import (
	"net/http"

	"github.com/cropsage/cropsage/internal/advisor"
)

const (
	zipWarning   = "Please enter a valid 5-digit zip code"
	plantWarning = "Please enter the plant type"
)

const zipcodeLength = 5

type detailsTemplateData struct {
	BaseTemplateData

	Issue       string
	Severity    string
	Plant       string
	Assessment  string
	PlantInput  string
	Zipcode     string
	Infestation string
	Warning     string
}

// newDetailsTemplateData builds the detection summary and form defaults. An
// unidentified plant shows as "Not identified" in the summary and leaves the
// input empty for the grower to fill in.
func newDetailsTemplateData(r *http.Request, state *advisorState) detailsTemplateData {
	plant := state.detection.PlantType
	plantInput := plant
	if plant == "Unknown" {
		plant = "Not identified"
		plantInput = ""
	}
	return detailsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Issue:            state.detection.Issue,
		Severity:         state.detection.Severity,
		Plant:            plant,
		Assessment:       state.assessment,
		PlantInput:       plantInput,
		Zipcode:          "",
		Infestation:      "medium",
		Warning:          "",
	}
}

func (app *application) detailsForm(w http.ResponseWriter, r *http.Request) {
	state := app.advisorState(r)
	if state == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	app.render(w, r, http.StatusOK, "details", newDetailsTemplateData(r, state))
}

func (app *application) openChannel(standingContext string) advisor.Channel {
	return app.assistant.NewChat(standingContext)
}

func (app *application) detailsSubmit(w http.ResponseWriter, r *http.Request) {
	state := app.advisorState(r)
	if state == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var (
		plant       = r.PostFormValue("plant")
		zipcode     = r.PostFormValue("zipcode")
		infestation = r.PostFormValue("infestation")
	)

	data := newDetailsTemplateData(r, state)
	data.PlantInput = plant
	data.Zipcode = zipcode
	data.Infestation = infestation
	if len(zipcode) != zipcodeLength {
		data.Warning = zipWarning
		app.render(w, r, http.StatusOK, "details", data)
		return
	}
	if plant == "" {
		data.Warning = plantWarning
		app.render(w, r, http.StatusOK, "details", data)
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	session := advisor.NewSession(app.logger, app.openChannel, app.locations, app.searcher, state.detection,
		advisor.Details{
			PlantType:        plant,
			Zipcode:          zipcode,
			InfestationLevel: infestation,
		})
	session.GenerateTreatment(r.Context())
	state.session = session

	http.Redirect(w, r, "/advisor", http.StatusSeeOther)
}
