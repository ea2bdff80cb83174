package services

import (
	"errors"
	"testing"

	"github.com/NJ-LDS/reading-service/internal/models"
)

func TestFormConfigResolveFiltersByTimingAndActivity(t *testing.T) {
	env := newTestEnv(t)
	svc := env.formConfigService(t)

	material := env.seedMaterial(t, "mat-config-1", "Gated Material")
	consent := env.seedForm(t, "form-consent-1", "Consent", models.FormConsent)
	survey := env.seedForm(t, "form-survey-1", "Survey", models.FormQuestionnaire)

	pre := models.TimingPreRead
	inactive := false
	if _, err := svc.Create(env.ctx, &CreateFormConfigRequest{
		MaterialID:    material.ID,
		FormID:        consent.ID,
		TriggerTiming: &pre,
	}); err != nil {
		t.Fatalf("Create pre_read config: %v", err)
	}
	// Timing defaults to post_read when omitted.
	if _, err := svc.Create(env.ctx, &CreateFormConfigRequest{
		MaterialID: material.ID,
		FormID:     survey.ID,
	}); err != nil {
		t.Fatalf("Create post_read config: %v", err)
	}
	// Inactive configs never resolve.
	if _, err := svc.Create(env.ctx, &CreateFormConfigRequest{
		MaterialID: material.ID,
		FormID:     survey.ID,
		IsActive:   &inactive,
	}); err != nil {
		t.Fatalf("Create inactive config: %v", err)
	}

	all, err := svc.Resolve(env.ctx, material.ID, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("active configs = %d, want 2", len(all))
	}
	for _, cfg := range all {
		if cfg.Form == nil {
			t.Errorf("config %d missing joined form", cfg.ID)
		}
	}

	preOnly, err := svc.Resolve(env.ctx, material.ID, &pre)
	if err != nil {
		t.Fatalf("Resolve pre_read: %v", err)
	}
	if len(preOnly) != 1 || preOnly[0].FormID != consent.ID {
		t.Errorf("pre_read resolution = %+v, want only the consent config", preOnly)
	}

	post := models.TimingPostRead
	postOnly, err := svc.Resolve(env.ctx, material.ID, &post)
	if err != nil {
		t.Fatalf("Resolve post_read: %v", err)
	}
	if len(postOnly) != 1 || postOnly[0].FormID != survey.ID {
		t.Errorf("post_read resolution = %+v, want only the survey config", postOnly)
	}

	if _, err := svc.Resolve(env.ctx, "no-such-material", nil); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("unknown material: got %v, want ErrMaterialNotFound", err)
	}
}

func TestFormConfigDeactivationHidesFromResolve(t *testing.T) {
	env := newTestEnv(t)
	svc := env.formConfigService(t)

	material := env.seedMaterial(t, "mat-config-3", "Gated Material")
	form := env.seedForm(t, "form-config-3", "Survey", models.FormQuestionnaire)

	config, err := svc.Create(env.ctx, &CreateFormConfigRequest{MaterialID: material.ID, FormID: form.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	active, err := svc.Resolve(env.ctx, material.ID, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active configs = %d, want 1", len(active))
	}

	inactive := false
	updated, err := svc.Update(env.ctx, config.ID, &UpdateFormConfigRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive {
		t.Errorf("IsActive = true after deactivation")
	}

	// The row survives; only resolution drops it.
	kept, err := env.repo.FormConfig().GetByID(env.ctx, env.tx, config.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivation: %v", err)
	}
	if kept.IsActive {
		t.Errorf("stored IsActive = true, want false")
	}

	resolved, err := svc.Resolve(env.ctx, material.ID, nil)
	if err != nil {
		t.Fatalf("Resolve after deactivation: %v", err)
	}
	if len(resolved) != 0 {
		t.Errorf("resolved configs = %d, want 0", len(resolved))
	}

	pre := models.TimingPreRead
	reactivated := true
	updated, err = svc.Update(env.ctx, config.ID, &UpdateFormConfigRequest{TriggerTiming: &pre, IsActive: &reactivated})
	if err != nil {
		t.Fatalf("Update reactivation: %v", err)
	}
	if !updated.IsActive || updated.TriggerTiming != models.TimingPreRead {
		t.Errorf("updated config = %+v, want active pre_read", updated)
	}

	if _, err := svc.Update(env.ctx, config.ID+1000, &UpdateFormConfigRequest{IsActive: &inactive}); !errors.Is(err, ErrFormConfigNotFound) {
		t.Errorf("unknown config: got %v, want ErrFormConfigNotFound", err)
	}
}

func TestFormConfigCreateValidatesReferences(t *testing.T) {
	env := newTestEnv(t)
	svc := env.formConfigService(t)

	material := env.seedMaterial(t, "mat-config-2", "Material")
	form := env.seedForm(t, "form-config-2", "Form", models.FormQuestionnaire)

	if _, err := svc.Create(env.ctx, &CreateFormConfigRequest{MaterialID: "missing", FormID: form.ID}); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("missing material: got %v, want ErrMaterialNotFound", err)
	}
	if _, err := svc.Create(env.ctx, &CreateFormConfigRequest{MaterialID: material.ID, FormID: "missing"}); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("missing form: got %v, want ErrFormNotFound", err)
	}

	config, err := svc.Create(env.ctx, &CreateFormConfigRequest{MaterialID: material.ID, FormID: form.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if config.TriggerTiming != models.TimingPostRead {
		t.Errorf("TriggerTiming = %q, want default post_read", config.TriggerTiming)
	}
	if !config.IsActive {
		t.Errorf("IsActive = false, want default true")
	}

	if err := svc.Delete(env.ctx, config.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(env.ctx, config.ID); !errors.Is(err, ErrFormConfigNotFound) {
		t.Errorf("repeat Delete: got %v, want ErrFormConfigNotFound", err)
	}
}
