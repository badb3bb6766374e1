package web

import (
	"errors"
	"net/http"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/form"
	"club-signup/internal/models"
)

const (
	introText        = "Join Today."
	buttonLabel      = "Apply"
	thankYouText     = "Thank you for your applying !! We will get back to you once we process your request."
	writeFailureText = "We could not save your application. Please try again."
)

type fieldSpec struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
}

var fieldSpecs = []fieldSpec{
	{Name: models.FieldFullName, Label: "Name", Type: "text", Placeholder: "Enter Your full name"},
	{Name: models.FieldEmail, Label: "Email", Type: "email", Placeholder: "Enter Caldwell Email"},
	{Name: models.FieldStudentID, Label: "Student ID", Type: "text", Placeholder: "Enter Your Caldwell Student ID"},
}

type fieldView struct {
	fieldSpec
	Value string
	Error string
}

type pageData struct {
	Title       string
	Intro       string
	ButtonLabel string
	Failure     string
	Fields      []fieldView

	ImageURL   string
	ThankYou   string
	DocumentID string
}

func (h *Handler) formPage(v form.View) pageData {
	data := pageData{
		Title:       h.cfg.Title,
		Intro:       introText,
		ButtonLabel: buttonLabel,
		Fields:      make([]fieldView, 0, len(fieldSpecs)),
	}
	for _, fld := range fieldSpecs {
		data.Fields = append(data.Fields, fieldView{
			fieldSpec: fld,
			Value:     v.Values[fld.Name],
			Error:     v.Errors[fld.Name],
		})
	}
	if v.State == form.Failed {
		data.Failure = writeFailureText
	}
	return data
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "form", h.formPage(h.newForm().Snapshot()))
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	f := h.newForm()
	for _, field := range models.Fields {
		_ = f.UpdateField(field, r.PostForm.Get(field))
	}

	id, err := f.Submit(r.Context())
	switch {
	case err == nil:
		h.render(w, r, http.StatusOK, "confirmation", pageData{
			Title:      h.cfg.Title,
			ImageURL:   h.cfg.ConfirmationImageURL,
			ThankYou:   thankYouText,
			DocumentID: id,
		})
	case errors.Is(err, form.ErrInvalid):
		h.render(w, r, http.StatusUnprocessableEntity, "form", h.formPage(f.Snapshot()))
	default:
		status := apperrors.HTTPStatus(apperrors.Normalize(err).Code)
		h.render(w, r, status, "form", h.formPage(f.Snapshot()))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render page", map[string]interface{}{
			"requestId": requestID(r),
			"template":  name,
			"error":     err,
		})
	}
}
