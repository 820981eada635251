package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cropsage/cropsage/internal/advisor"
)

type advisorTemplateData struct {
	BaseTemplateData

	Issue      string
	Severity   string
	Plant      string
	Assessment string
	Treatment  string
	History    []advisor.ConversationEntry
}

func (app *application) advisorPage(w http.ResponseWriter, r *http.Request) {
	state := app.advisorState(r)
	if state == nil || state.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	plant := state.detection.PlantType
	if plant == "Unknown" {
		plant = "Not identified"
	}
	data := advisorTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Issue:            state.detection.Issue,
		Severity:         state.detection.Severity,
		Plant:            plant,
		Assessment:       state.assessment,
		Treatment:        state.session.Treatment(),
		History:          state.session.Log(),
	}
	app.render(w, r, http.StatusOK, "advisor", data)
}

func (app *application) advisorAnswer(w http.ResponseWriter, r *http.Request) {
	state := app.advisorState(r)
	if state == nil || state.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	option, err := strconv.Atoi(r.PostFormValue("option"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	state.mu.Lock()
	state.session.Answer(r.Context(), option)
	state.mu.Unlock()

	http.Redirect(w, r, "/advisor", http.StatusSeeOther)
}

func (app *application) advisorQuestion(w http.ResponseWriter, r *http.Request) {
	state := app.advisorState(r)
	if state == nil || state.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	question := strings.TrimSpace(r.PostFormValue("question"))
	if question == "" {
		http.Redirect(w, r, "/advisor", http.StatusSeeOther)
		return
	}

	state.mu.Lock()
	state.session.AskCustom(r.Context(), question)
	state.mu.Unlock()

	http.Redirect(w, r, "/advisor", http.StatusSeeOther)
}

func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if token := app.sessionManager.GetString(ctx, advisorTokenSessionKey); token != "" {
		app.sessions.remove(token)
	}
	app.sessionManager.Remove(ctx, advisorTokenSessionKey)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
