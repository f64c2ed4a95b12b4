package api_test

import (
	"net/http"
	"testing"
)

type applicantBody struct {
	ID             string `json:"id"`
	JobID          string `json:"jobId"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	Status         string `json:"status"`
	Vendor         *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"vendor"`
}

func (e *testEnv) apply(jobID string) applicantBody {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/jobs/"+jobID+"/applicant", "", map[string]string{
		"applicantName":  "Ada",
		"applicantEmail": "ada@example.com",
	})
	if w.Code != http.StatusCreated {
		e.t.Fatalf("apply: status %d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Message     string        `json:"message"`
		Application applicantBody `json:"application"`
	}
	decode(e.t, w, &out)
	if out.Message != "Applicant created successfully" {
		e.t.Fatalf("unexpected message %q", out.Message)
	}
	return out.Application
}

func TestApply(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("Acme", "hr@acme.test")
	jobID := env.createJob(owner.Token)

	app := env.apply(jobID)
	if app.Status != "pending" || app.JobID != jobID {
		t.Fatalf("unexpected application %+v", app)
	}

	w := env.do(http.MethodPost, "/api/jobs/"+jobID+"/applicant", "", map[string]string{"applicantName": "NoEmail"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing email: want 400 got %d", w.Code)
	}
}

func TestApply_ClosedJob(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("Acme", "hr@acme.test")
	jobID := env.createJob(owner.Token)
	env.do(http.MethodPatch, "/api/jobs/"+jobID+"/status", owner.Token, map[string]string{"status": "closed"})

	body := map[string]string{"applicantName": "Ada", "applicantEmail": "ada@example.com"}
	for _, id := range []string{jobID, "missing"} {
		w := env.do(http.MethodPost, "/api/jobs/"+id+"/applicant", "", body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: want 404 got %d", id, w.Code)
		}
		var eb errBody
		decode(t, w, &eb)
		if eb.Message != "Job not found or not open for applications" {
			t.Fatalf("unexpected message %q", eb.Message)
		}
	}
}

func TestListApplicants(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("Acme", "hr@acme.test")
	other := env.register("Other", "other@example.com")
	jobID := env.createJob(owner.Token)
	env.apply(jobID)
	path := "/api/jobs/" + jobID + "/applicants"

	if w := env.do(http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401 got %d", w.Code)
	}
	if w := env.do(http.MethodGet, path, other.Token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("other vendor: want 403 got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/jobs/missing/applicants", owner.Token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing job: want 404 got %d", w.Code)
	}

	w := env.do(http.MethodGet, path, owner.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: want 200 got %d", w.Code)
	}
	var list []applicantBody
	decode(t, w, &list)
	if len(list) != 1 || list[0].ApplicantName != "Ada" || list[0].Status != "pending" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list[0].Vendor == nil || list[0].Vendor.Name != "Acme" {
		t.Fatalf("missing vendor projection %+v", list[0].Vendor)
	}
}

func TestUpdateApplicantStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("Acme", "hr@acme.test")
	other := env.register("Other", "other@example.com")
	jobID := env.createJob(owner.Token)
	otherJobID := env.createJob(other.Token)
	app := env.apply(jobID)

	cases := []struct {
		name       string
		token      string
		path       string
		status     string
		wantStatus int
	}{
		{"NoToken", "", "/api/jobs/" + jobID + "/applicant/" + app.ID, "hired", http.StatusUnauthorized},
		{"Interview", owner.Token, "/api/jobs/" + jobID + "/applicant/" + app.ID, "interview", http.StatusBadRequest},
		{"Unknown", owner.Token, "/api/jobs/" + jobID + "/applicant/" + app.ID, "maybe", http.StatusBadRequest},
		{"MissingApplication", owner.Token, "/api/jobs/" + jobID + "/applicant/nope", "hired", http.StatusNotFound},
		{"WrongJob", owner.Token, "/api/jobs/" + otherJobID + "/applicant/" + app.ID, "hired", http.StatusForbidden},
		{"OtherVendorOwnJob", other.Token, "/api/jobs/" + jobID + "/applicant/" + app.ID, "hired", http.StatusForbidden},
		{"Hired", owner.Token, "/api/jobs/" + jobID + "/applicant/" + app.ID, "hired", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := env.do(http.MethodPatch, c.path, c.token, map[string]string{"status": c.status})
			if w.Code != c.wantStatus {
				t.Fatalf("want %d got %d body=%s", c.wantStatus, w.Code, w.Body.String())
			}
			if w.Code == http.StatusOK {
				var got applicantBody
				decode(t, w, &got)
				if got.Status != c.status {
					t.Fatalf("status not applied: %+v", got)
				}
			}
		})
	}
}
