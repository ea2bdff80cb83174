package services

import (
	"errors"
	"testing"

	"github.com/NJ-LDS/reading-service/internal/models"
)

func TestResponseSubmissionsKeepHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := env.responseService(t)

	user := env.seedUser(t, "13930000001", "Respondent")
	material := env.seedMaterial(t, "mat-resp-1", "Material")
	form := env.seedForm(t, "form-resp-1", "Survey", models.FormQuestionnaire)

	first, err := svc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:     user.PhoneNumber,
		MaterialID: material.ID,
		FormID:     form.ID,
		Answers:    []byte(`{"q1":"first"}`),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	second, err := svc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:     user.PhoneNumber,
		MaterialID: material.ID,
		FormID:     form.ID,
		Answers:    []byte(`{"q1":"second"}`),
	})
	if err != nil {
		t.Fatalf("repeat Submit: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("resubmission overwrote the original entry")
	}

	responses, err := svc.ListByUser(env.ctx, user.PhoneNumber)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("responses = %d, want 2", len(responses))
	}
	if responses[0].ID != second.ID {
		t.Errorf("newest response not first: got id %d, want %d", responses[0].ID, second.ID)
	}
}

func TestResponseSubmitValidatesReferences(t *testing.T) {
	env := newTestEnv(t)
	svc := env.responseService(t)

	user := env.seedUser(t, "13930000002", "Respondent")
	material := env.seedMaterial(t, "mat-resp-2", "Material")
	form := env.seedForm(t, "form-resp-2", "Survey", models.FormQuestionnaire)

	cases := []struct {
		name string
		req  SubmitResponseRequest
		want error
	}{
		{
			name: "unknown user",
			req:  SubmitResponseRequest{UserID: "missing", MaterialID: material.ID, FormID: form.ID, Answers: []byte(`{}`)},
			want: ErrUserNotFound,
		},
		{
			name: "unknown material",
			req:  SubmitResponseRequest{UserID: user.PhoneNumber, MaterialID: "missing", FormID: form.ID, Answers: []byte(`{}`)},
			want: ErrMaterialNotFound,
		},
		{
			name: "unknown form",
			req:  SubmitResponseRequest{UserID: user.PhoneNumber, MaterialID: material.ID, FormID: "missing", Answers: []byte(`{}`)},
			want: ErrFormNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(env.ctx, &tc.req); !errors.Is(err, tc.want) {
				t.Errorf("Submit: got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestResponseDetailEnrichment(t *testing.T) {
	env := newTestEnv(t)
	svc := env.responseService(t)

	user := env.seedUser(t, "13930000003", "Named Respondent")
	material := env.seedMaterial(t, "mat-resp-3", "Titled Material")
	form := env.seedForm(t, "form-resp-3", "Titled Survey", models.FormQuestionnaire)

	duration := 42
	submitted, err := svc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:          user.PhoneNumber,
		MaterialID:      material.ID,
		FormID:          form.ID,
		Answers:         []byte(`{"q1":"a"}`),
		DurationSeconds: &duration,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	detail, err := svc.GetByID(env.ctx, submitted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if detail.UserName != user.Name {
		t.Errorf("UserName = %q, want %q", detail.UserName, user.Name)
	}
	if detail.MaterialTitle != material.Title {
		t.Errorf("MaterialTitle = %q, want %q", detail.MaterialTitle, material.Title)
	}
	if detail.FormTitle != form.Title {
		t.Errorf("FormTitle = %q, want %q", detail.FormTitle, form.Title)
	}

	if _, err := svc.GetByID(env.ctx, submitted.ID+1000); !errors.Is(err, ErrResponseNotFound) {
		t.Errorf("unknown response: got %v, want ErrResponseNotFound", err)
	}
}

func TestResponseExportBuildsWorkbook(t *testing.T) {
	env := newTestEnv(t)
	svc := env.responseService(t)

	user := env.seedUser(t, "13930000004", "Export User")
	material := env.seedMaterial(t, "mat-resp-4", "Export Material")
	form := env.seedForm(t, "form-resp-4", "Export Survey", models.FormQuestionnaire)

	submitted, err := svc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:     user.PhoneNumber,
		MaterialID: material.ID,
		FormID:     form.ID,
		Answers:    []byte(`{"q1":"exported"}`),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	file, err := svc.Export(env.ctx, []uint{submitted.ID})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Responses")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Errorf("header[0] = %q, want ID", rows[0][0])
	}
	if rows[1][1] != user.Name {
		t.Errorf("user column = %q, want %q", rows[1][1], user.Name)
	}
	if rows[1][3] != material.Title {
		t.Errorf("material column = %q, want %q", rows[1][3], material.Title)
	}
}

func TestResponseUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := env.responseService(t)

	user := env.seedUser(t, "13930000005", "Editable User")
	material := env.seedMaterial(t, "mat-resp-5", "Material")
	form := env.seedForm(t, "form-resp-5", "Survey", models.FormQuestionnaire)

	submitted, err := svc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:     user.PhoneNumber,
		MaterialID: material.ID,
		FormID:     form.ID,
		Answers:    []byte(`{"q1":"before"}`),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	duration := 7
	updated, err := svc.Update(env.ctx, submitted.ID, &UpdateResponseRequest{
		Answers:         []byte(`{"q1":"after"}`),
		DurationSeconds: &duration,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if string(updated.Answers) != `{"q1": "after"}` && string(updated.Answers) != `{"q1":"after"}` {
		t.Errorf("Answers = %s, want updated payload", updated.Answers)
	}
	if updated.DurationSeconds == nil || *updated.DurationSeconds != duration {
		t.Errorf("DurationSeconds not updated")
	}

	if err := svc.Delete(env.ctx, submitted.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(env.ctx, submitted.ID); !errors.Is(err, ErrResponseNotFound) {
		t.Errorf("repeat Delete: got %v, want ErrResponseNotFound", err)
	}
}
