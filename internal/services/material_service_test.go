package services

import (
	"errors"
	"testing"

	"github.com/NJ-LDS/reading-service/internal/models"
)

func TestMaterialServiceCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.materialService(t)

	material, err := svc.Create(env.ctx, &CreateMaterialRequest{
		Title:   "Untitled Study Text",
		Type:    models.MaterialText,
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if material.ID == "" {
		t.Errorf("ID not generated")
	}
	if material.Author != "Unknown" {
		t.Errorf("Author = %q, want Unknown", material.Author)
	}

	// Client-chosen IDs are honored, and collisions rejected.
	id := "mat-explicit-id"
	if _, err := svc.Create(env.ctx, &CreateMaterialRequest{
		ID:      &id,
		Title:   "Explicit",
		Type:    models.MaterialHTML,
		Content: "<p>hi</p>",
	}); err != nil {
		t.Fatalf("Create with ID: %v", err)
	}
	if _, err := svc.Create(env.ctx, &CreateMaterialRequest{
		ID:      &id,
		Title:   "Collision",
		Type:    models.MaterialHTML,
		Content: "<p>hi</p>",
	}); !errors.Is(err, ErrMaterialExists) {
		t.Errorf("duplicate ID: got %v, want ErrMaterialExists", err)
	}
}

func TestMaterialServiceUpdatePreservesUnsetFields(t *testing.T) {
	env := newTestEnv(t)
	svc := env.materialService(t)

	material := env.seedMaterial(t, "mat-update-1", "Original Title")

	title := "New Title"
	updated, err := svc.Update(env.ctx, material.ID, &UpdateMaterialRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != title {
		t.Errorf("Title = %q, want %q", updated.Title, title)
	}
	if updated.Content != material.Content {
		t.Errorf("Content changed by partial update")
	}
	if updated.Author != material.Author {
		t.Errorf("Author changed by partial update")
	}
}

func TestMaterialServiceDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	materialSvc := env.materialService(t)
	assignSvc := env.assignmentService(t)
	configSvc := env.formConfigService(t)
	responseSvc := env.responseService(t)
	logSvc := env.logService(t)

	user := env.seedUser(t, "13920000001", "Cascade User")
	material := env.seedMaterial(t, "mat-cascade-1", "Doomed Material")
	form := env.seedForm(t, "form-cascade-1", "Survey", models.FormQuestionnaire)

	if _, err := assignSvc.Assign(env.ctx, material.ID, []string{user.PhoneNumber}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := configSvc.Create(env.ctx, &CreateFormConfigRequest{MaterialID: material.ID, FormID: form.ID}); err != nil {
		t.Fatalf("Create config: %v", err)
	}
	if _, err := responseSvc.Submit(env.ctx, &SubmitResponseRequest{
		UserID:     user.PhoneNumber,
		MaterialID: material.ID,
		FormID:     form.ID,
		Answers:    []byte(`{"q1":"yes"}`),
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := logSvc.Record(env.ctx, &CreateLogRequest{
		UserID:     user.PhoneNumber,
		Action:     "material_opened",
		MaterialID: &material.ID,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := materialSvc.Delete(env.ctx, material.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := materialSvc.GetByID(env.ctx, material.ID); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("material still present after delete")
	}
	configs, err := configSvc.Resolve(env.ctx, material.ID, nil)
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("Resolve after delete: got (%v, %v), want ErrMaterialNotFound", configs, err)
	}
	responses, err := responseSvc.ListByMaterial(env.ctx, material.ID)
	if err != nil {
		t.Fatalf("ListByMaterial: %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("responses not cascaded: %d remain", len(responses))
	}
	logs, err := logSvc.ListByMaterial(env.ctx, material.ID)
	if err != nil {
		t.Fatalf("ListByMaterial logs: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("logs not cascaded: %d remain", len(logs))
	}

	// The user itself must survive the material cascade.
	if _, err := env.userService(t, true).GetByPhone(env.ctx, user.PhoneNumber); err != nil {
		t.Errorf("user affected by material delete: %v", err)
	}
}
