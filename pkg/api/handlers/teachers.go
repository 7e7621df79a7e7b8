package handlers

import (
	"errors"
	"net/http"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/metrics"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/observability"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/teacher"
)

// Canonical response messages. Error strings for document-side dual-write
// failures are fixed; identity-side failures surface the upstream error
// message verbatim.
const (
	msgCreated        = "Teacher created successfully."
	msgCreateDocFail  = "Teacher couldn't be created successfully in the database."
	msgDeleted        = "Teacher successfully deleted."
	msgDeleteDocFail  = "Teacher couldn't be deleted from the database."
	msgMissingID      = "Missing teacher ID."
	msgRenamed        = "Teacher's name successfully updated."
	msgMissingName    = "Missing data for name."
	msgInvalidPayload = "Wrong data types for teacher."
)

// TeacherHandler handles the four teacher lifecycle endpoints.
type TeacherHandler struct {
	service *teacher.Service
	metrics *metrics.TeacherOperations
}

// NewTeacherHandler creates a TeacherHandler.
func NewTeacherHandler(service *teacher.Service, m *metrics.TeacherOperations) *TeacherHandler {
	return &TeacherHandler{service: service, metrics: m}
}

type addTeacherRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender"`
	Disabled  string `json:"disabled"`
}

type deleteTeacherRequest struct {
	ID string `json:"id"`
}

type renameTeacherRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type setEnabledRequest struct {
	ID string `json:"id"`
	// Disable is a pointer so an absent field is rejected instead of
	// silently enabling the account.
	Disable *bool `json:"disable"`
}

// Create handles POST /add_teacher.
func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addTeacherRequest
	if !decodeJSONBody(w, r, &req, msgInvalidPayload) {
		h.metrics.RecordOperation("create", metrics.OutcomeInvalid)
		return
	}

	t, err := teacher.Validate(teacher.RawTeacher{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Gender:    req.Gender,
		Disabled:  req.Disabled,
	})
	if err != nil {
		h.metrics.RecordOperation("create", metrics.OutcomeInvalid)
		var verr *teacher.ValidationError
		if errors.As(err, &verr) {
			Error(w, verr.Message())
		} else {
			Error(w, msgInvalidPayload)
		}
		return
	}

	if _, err := h.service.Create(r.Context(), t); err != nil {
		h.fail(w, "create", err, map[teacher.Step]string{
			teacher.StepDocument: msgCreateDocFail,
		})
		return
	}

	h.metrics.RecordOperation("create", metrics.OutcomeSuccess)
	Success(w, msgCreated)
}

// Delete handles DELETE /delete_teacher.
func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteTeacherRequest
	if !decodeJSONBody(w, r, &req, msgMissingID) {
		h.metrics.RecordOperation("delete", metrics.OutcomeInvalid)
		return
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, teacher.ErrMissingID) {
			h.metrics.RecordOperation("delete", metrics.OutcomeInvalid)
			Error(w, msgMissingID)
			return
		}
		h.fail(w, "delete", err, map[teacher.Step]string{
			teacher.StepDocument: msgDeleteDocFail,
		})
		return
	}

	h.metrics.RecordOperation("delete", metrics.OutcomeSuccess)
	Success(w, msgDeleted)
}

// Rename handles PUT /edit_teacher_name.
func (h *TeacherHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameTeacherRequest
	if !decodeJSONBody(w, r, &req, msgMissingName) {
		h.metrics.RecordOperation("rename", metrics.OutcomeInvalid)
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		h.metrics.RecordOperation("rename", metrics.OutcomeInvalid)
		Error(w, msgMissingName)
		return
	}

	name, err := teacher.ValidateName(req.FirstName, req.LastName)
	if err != nil {
		h.metrics.RecordOperation("rename", metrics.OutcomeInvalid)
		var verr *teacher.ValidationError
		if errors.As(err, &verr) {
			Error(w, verr.Message())
		} else {
			Error(w, msgMissingName)
		}
		return
	}

	if err := h.service.Rename(r.Context(), req.ID, name); err != nil {
		h.fail(w, "rename", err, nil)
		return
	}

	h.metrics.RecordOperation("rename", metrics.OutcomeSuccess)
	Success(w, msgRenamed)
}

// SetEnabled handles PUT /enable_disable_teacher.
func (h *TeacherHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	var req setEnabledRequest
	if !decodeJSONBody(w, r, &req, msgInvalidPayload) {
		h.metrics.RecordOperation("set_enabled", metrics.OutcomeInvalid)
		return
	}

	if req.Disable == nil {
		h.metrics.RecordOperation("set_enabled", metrics.OutcomeInvalid)
		Error(w, (&teacher.ValidationError{Field: "enabled/disabled"}).Message())
		return
	}

	if err := h.service.SetEnabled(r.Context(), req.ID, *req.Disable); err != nil {
		h.fail(w, "set_enabled", err, nil)
		return
	}

	h.metrics.RecordOperation("set_enabled", metrics.OutcomeSuccess)
	// The wording follows the requested state, not any upstream readback.
	if *req.Disable {
		Success(w, "Teacher's account successfully disabled.")
	} else {
		Success(w, "Teacher's account successfully enabled.")
	}
}

// fail writes the error envelope for an orchestration failure. Steps listed
// in overrides use their fixed message; everything else surfaces the
// upstream error verbatim.
func (h *TeacherHandler) fail(w http.ResponseWriter, operation string, err error, overrides map[teacher.Step]string) {
	h.metrics.RecordOperation(operation, metrics.OutcomeError)
	observability.CaptureErr(err)

	var opErr *teacher.OpError
	if errors.As(err, &opErr) {
		if msg, ok := overrides[opErr.Step]; ok {
			Error(w, msg)
			return
		}
		Error(w, opErr.Err.Error())
		return
	}
	Error(w, err.Error())
}
