package main

import (
	"io"
	"net/http"

	"github.com/cropsage/cropsage/internal/advisor"
	"github.com/cropsage/cropsage/internal/errors"
)

const maxUploadBytes = 10 << 20

const invalidImageWarning = "Please upload a JPEG, PNG or WebP image."

// allowedImageTypes are the photo formats the vision models accept. The type
// is sniffed from the payload, the file extension is not trusted.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// readUploadedImage pulls the named file out of the multipart form and sniffs
// its MIME type.
func (app *application) readUploadedImage(r *http.Request, field string) ([]byte, string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, "", errors.Wrap(err, "read form file")
	}
	defer func() {
		_ = file.Close()
	}()
	var image []byte
	if image, err = io.ReadAll(file); err != nil {
		return nil, "", errors.Wrap(err, "read image")
	}
	return image, http.DetectContentType(image), nil
}

func (app *application) analyze(w http.ResponseWriter, r *http.Request) {
	image, mimeType, err := app.readUploadedImage(r, "plant_image")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if !allowedImageTypes[mimeType] {
		data := homeTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Warning:          invalidImageWarning,
		}
		app.render(w, r, http.StatusOK, "home", data)
		return
	}

	ctx := r.Context()
	detection := app.plantDetector.Identify(ctx, image, mimeType)
	assessment := advisor.BriefAssessment(
		ctx, app.logger, app.assistant, detection.Issue, detection.Severity, detection.PlantType)

	// A new upload abandons any earlier analysis in the same browser session.
	if old := app.sessionManager.GetString(ctx, advisorTokenSessionKey); old != "" {
		app.sessions.remove(old)
	}
	token := app.sessions.add(&advisorState{ //nolint:exhaustruct // session is set by the details form.
		detection:  detection,
		assessment: assessment,
	})
	app.sessionManager.Put(ctx, advisorTokenSessionKey, token)

	http.Redirect(w, r, "/details", http.StatusSeeOther)
}
