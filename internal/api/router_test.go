package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
	"github.com/anilvs/casetrack/internal/service"
)

var testKey = []byte("test-sign-key")

type fakeComplaintSvc struct {
	searchFilter repository.SearchFilter
	getErr       error
}

var _ service.ComplaintService = (*fakeComplaintSvc)(nil)

func (f *fakeComplaintSvc) Submit(_ context.Context, in service.SubmitComplaint) (*model.Complaint, error) {
	if in.CitizenName == "" {
		return nil, errs.Validation("citizen_name", "required")
	}
	return &model.Complaint{
		ID:              uuid.Must(uuid.NewV4()),
		ReferenceNumber: "CR20260824ABCDEF",
		CitizenID:       in.CitizenID,
		CitizenName:     in.CitizenName,
		Status:          model.StatusPending,
		Severity:        model.SeverityMedium,
	}, nil
}
func (f *fakeComplaintSvc) GetByReference(_ context.Context, ref string) (*model.Complaint, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Complaint{ReferenceNumber: ref, Status: model.StatusPending}, nil
}
func (f *fakeComplaintSvc) Search(_ context.Context, flt repository.SearchFilter) ([]model.Complaint, int64, error) {
	f.searchFilter = flt
	return nil, 0, nil
}
func (f *fakeComplaintSvc) ListPending(context.Context) ([]model.Complaint, error) {
	return []model.Complaint{{Severity: model.SeverityHigh, Status: model.StatusPending}}, nil
}
func (f *fakeComplaintSvc) Statistics(context.Context, time.Time, time.Time) (*repository.Statistics, error) {
	return &repository.Statistics{}, nil
}

type fakeCaseSvc struct {
	transitionErr error
}

var _ service.CaseService = (*fakeCaseSvc)(nil)

func (f *fakeCaseSvc) Transition(_ context.Context, complaintID uuid.UUID, st model.Status, officerID uuid.UUID, notes string) (*model.CaseUpdate, error) {
	if f.transitionErr != nil {
		return nil, f.transitionErr
	}
	return &model.CaseUpdate{ID: uuid.Must(uuid.NewV4()), CaseID: uuid.Must(uuid.NewV4()), OfficerID: officerID, Status: st, Notes: notes}, nil
}
func (f *fakeCaseSvc) Register(_ context.Context, complaintID, officerID uuid.UUID, ref string) (*model.Case, error) {
	return &model.Case{ID: uuid.Must(uuid.NewV4()), ComplaintID: complaintID, OfficerID: officerID, Status: model.StatusUnderInvestigation, ReportRef: ref}, nil
}
func (f *fakeCaseSvc) Get(_ context.Context, complaintID uuid.UUID) (*model.Case, error) {
	return &model.Case{ComplaintID: complaintID}, nil
}
func (f *fakeCaseSvc) Updates(context.Context, uuid.UUID) ([]model.CaseUpdate, error) {
	return nil, nil
}

type fakeLawSvc struct{}

var _ service.LawService = (*fakeLawSvc)(nil)

func (fakeLawSvc) Suggest(context.Context, string, string) ([]model.Law, error) {
	return []model.Law{}, nil
}
func (fakeLawSvc) Search(context.Context, string, string) ([]model.Law, error) { return nil, nil }
func (fakeLawSvc) List(context.Context) ([]model.Law, error)                   { return nil, nil }

type fakeEvidenceSvc struct{}

var _ service.EvidenceService = (*fakeEvidenceSvc)(nil)

func (fakeEvidenceSvc) Attach(_ context.Context, in service.AttachEvidence) (*model.Evidence, error) {
	return &model.Evidence{ID: uuid.Must(uuid.NewV4()), ComplaintID: in.ComplaintID, FileName: in.FileName}, nil
}
func (fakeEvidenceSvc) List(context.Context, uuid.UUID) ([]model.Evidence, error) { return nil, nil }
func (fakeEvidenceSvc) Remove(context.Context, uuid.UUID) error                   { return nil }

func testServer(complaints *fakeComplaintSvc, cases *fakeCaseSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := New(nil, complaints, cases, fakeLawSvc{}, fakeEvidenceSvc{}, testKey, zap.NewNop())
	return s.Router()
}

func signToken(t *testing.T, id uuid.UUID, role model.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  id.String(),
		"role": string(role),
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_SearchRequiresAuth(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{})

	w := doRequest(r, http.MethodGet, "/api/complaints", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRouter_CitizenSearchScopedToOwnComplaints(t *testing.T) {
	complaints := &fakeComplaintSvc{}
	r := testServer(complaints, &fakeCaseSvc{})
	citizenID := uuid.Must(uuid.NewV4())

	w := doRequest(r, http.MethodGet, "/api/complaints?status=Pending", signToken(t, citizenID, model.RoleCitizen), "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if complaints.searchFilter.CitizenID != citizenID {
		t.Fatalf("citizen filter not applied: %v", complaints.searchFilter.CitizenID)
	}
}

func TestRouter_OfficerSearchUnscoped(t *testing.T) {
	complaints := &fakeComplaintSvc{}
	r := testServer(complaints, &fakeCaseSvc{})

	w := doRequest(r, http.MethodGet, "/api/complaints", signToken(t, uuid.Must(uuid.NewV4()), model.RoleOfficer), "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if complaints.searchFilter.CitizenID != uuid.Nil {
		t.Fatalf("officer search must not be citizen scoped")
	}
}

func TestRouter_OfficerRoutesForbiddenForCitizens(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{})
	token := signToken(t, uuid.Must(uuid.NewV4()), model.RoleCitizen)

	w := doRequest(r, http.MethodGet, "/api/complaints/pending", token, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("pending: want 403, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPost, "/api/complaints/"+uuid.Must(uuid.NewV4()).String()+"/transition", token, `{"status":"Resolved"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("transition: want 403, got %d", w.Code)
	}
}

func TestRouter_TransitionConflictMapsTo409(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{transitionErr: errs.ErrInvalidTransition})
	token := signToken(t, uuid.Must(uuid.NewV4()), model.RoleOfficer)

	w := doRequest(r, http.MethodPost, "/api/complaints/"+uuid.Must(uuid.NewV4()).String()+"/transition", token, `{"status":"Closed"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_SubmitValidationMapsTo400(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{})

	w := doRequest(r, http.MethodPost, "/api/complaints", "", `{"crime_type":"Theft"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_SubmitOpenToAnonymous(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{})

	body := `{"citizen_name":"A","citizen_email":"a@example.com","citizen_phone":"1","crime_type":"Theft","description":"d","location":"l","incident_date":"2026-08-01T10:00:00Z"}`
	w := doRequest(r, http.MethodPost, "/api/complaints", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "CR20260824ABCDEF") {
		t.Fatalf("reference number missing: %s", w.Body.String())
	}
}

func TestRouter_GetByReferenceNotFound(t *testing.T) {
	r := testServer(&fakeComplaintSvc{getErr: errs.ErrNotFound}, &fakeCaseSvc{})

	w := doRequest(r, http.MethodGet, "/api/complaints/ref/CR20260101000000", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestRouter_BadTokenRejected(t *testing.T) {
	r := testServer(&fakeComplaintSvc{}, &fakeCaseSvc{})

	w := doRequest(r, http.MethodGet, "/api/complaints", "garbage", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}
