package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/output"
)

const invalidFormMessage = "Invalid file format"

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><title>Portfolio Analysis</title></head>
<body>
<h1>Portfolio Analysis</h1>
{{ if .Error }}<p class="error">{{ .Error }}</p>{{ end }}
<form method="post" enctype="multipart/form-data">
  <p><label for="id_file">File:</label> <input type="file" name="file" id="id_file" required></p>
  <p><label for="id_save_to_db">Save to Database:</label> <input type="checkbox" name="save_to_db" id="id_save_to_db"></p>
  <button type="submit">Analyze</button>
</form>
</body>
</html>
`))

type formData struct {
	Error string
}

// ShowForm renders the upload form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, "")
}

// Analyze extracts the uploaded portfolio and optionally persists it.
// A submission without a file re-renders the form; an unreadable workbook
// is a 400 with a JSON error.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Debug().Err(err).Msg("Invalid upload form")
		renderForm(w, invalidFormMessage)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header.Size == 0 {
		if file != nil {
			file.Close()
		}
		renderForm(w, invalidFormMessage)
		return
	}
	defer file.Close()
	persist := formBool(r.FormValue("save_to_db"))

	upload, err := h.area.Stage(file, header.Filename)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("Failed to stage upload")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer upload.Remove()

	result, err := pfstruct.Extract(upload.Path)
	if err != nil {
		log.Warn().Err(err).Str("file", header.Filename).Msg("Extraction failed")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := pfstruct.Persist(r.Context(), h.repo, result, persist, h.now().In(pfstruct.IST)); err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("Persisting portfolio failed")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log.Info().
		Str("file", header.Filename).
		Int("holdings", len(result.Holdings)).
		Bool("persisted", persist).
		Msg("Portfolio extracted")

	data, err := output.ToJSON(result, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// formBool interprets a checkbox value. Only empty, "false" and "0" are false.
func formBool(v string) bool {
	switch strings.ToLower(v) {
	case "", "false", "0":
		return false
	}
	return true
}

func renderForm(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, formData{Error: errMsg}); err != nil {
		log.Error().Err(err).Msg("Failed to render form")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	data, mErr := output.ErrorToJSON(err, false)
	if mErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, status, data)
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
