package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/core/service"
)

// EntityHandler exposes the CRUD screens backed by the entity services.
type EntityHandler struct {
	clinicCtx     *service.ClinicContext
	clinics       ports.ClinicService
	patients      ports.PatientService
	appointments  ports.AppointmentService
	users         ports.UserService
	roles         ports.RoleService
	prescriptions ports.PrescriptionService
	history       ports.MedicalHistoryService
}

// EntityServices groups the services EntityHandler calls.
type EntityServices struct {
	Clinics       ports.ClinicService
	Patients      ports.PatientService
	Appointments  ports.AppointmentService
	Users         ports.UserService
	Roles         ports.RoleService
	Prescriptions ports.PrescriptionService
	History       ports.MedicalHistoryService
}

func NewEntityHandler(clinicCtx *service.ClinicContext, svc EntityServices) *EntityHandler {
	return &EntityHandler{
		clinicCtx:     clinicCtx,
		clinics:       svc.Clinics,
		patients:      svc.Patients,
		appointments:  svc.Appointments,
		users:         svc.Users,
		roles:         svc.Roles,
		prescriptions: svc.Prescriptions,
		history:       svc.History,
	}
}

// clinicScope returns the clinicId query param, else the resolved clinic.
func (h *EntityHandler) clinicScope(c echo.Context) (*int, error) {
	if c.QueryParam("clinicId") != "" {
		var id int
		if err := echo.QueryParamsBinder(c).Int("clinicId", &id).BindError(); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "clinicId must be a number")
		}
		return &id, nil
	}
	return h.clinicCtx.Resolve(c.Request().Context()), nil
}

func (h *EntityHandler) requireClinic(c echo.Context) (int, error) {
	id, err := h.clinicScope(c)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "no clinic selected")
	}
	return *id, nil
}

// ListAppointments
//
// @Summary   List appointments of the active clinic
// @Tags      appointments
// @Produce   json
// @Param     clinicId  query     int  false  "Clinic override"
// @Success   200       {array}   domain.Appointment
// @Failure   400       {object}  map[string]string
// @Router    /appointments [get]
func (h *EntityHandler) ListAppointments(c echo.Context) error {
	clinicID, err := h.requireClinic(c)
	if err != nil {
		return err
	}
	out, err := h.appointments.List(c.Request().Context(), clinicID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListPatients
//
// @Summary   List patients of the active clinic
// @Tags      patients
// @Produce   json
// @Param     clinicId  query     int  false  "Clinic override"
// @Success   200       {array}   domain.Patient
// @Router    /patients [get]
func (h *EntityHandler) ListPatients(c echo.Context) error {
	clinicID, err := h.requireClinic(c)
	if err != nil {
		return err
	}
	out, err := h.patients.List(c.Request().Context(), clinicID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler) UpdatePatient(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var p domain.Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	p.ID = &id
	if err := h.patients.Update(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *EntityHandler) DeletePatient(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.patients.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EntityHandler) ListClinics(c echo.Context) error {
	out, err := h.clinics.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// CreateClinic registers a clinic owned by the logged-in user.
func (h *EntityHandler) CreateClinic(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var in domain.Clinic
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	out, err := h.clinics.Create(c.Request().Context(), *s.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *EntityHandler) ListUsers(c echo.Context) error {
	out, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListRoles lists the roles of the clinic in scope, or every role when none
// is.
func (h *EntityHandler) ListRoles(c echo.Context) error {
	clinicID, err := h.clinicScope(c)
	if err != nil {
		return err
	}
	out, err := h.roles.List(c.Request().Context(), clinicID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler) GetPrescription(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.prescriptions.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler) PrescriptionQR(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	b, err := h.prescriptions.QR(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, http.DetectContentType(b), b)
}

// ValidatePrescription is public: pharmacies check codes without a session.
//
// @Summary   Validate a prescription code
// @Tags      prescriptions
// @Produce   json
// @Param     code  path      string  true  "Validation code"
// @Success   200   {object}  domain.PrescriptionValidation
// @Failure   404   {object}  map[string]string
// @Router    /validate-prescription/{code} [get]
func (h *EntityHandler) ValidatePrescription(c echo.Context) error {
	out, err := h.prescriptions.Validate(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler) PatientHistory(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.history.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
