package main

import "net/http"

// healthy reports liveness. Deploy checks and the smoke test poll this before
// driving any form flow.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","service":"cropsage"}`))
}
