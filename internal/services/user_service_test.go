package services

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/NJ-LDS/reading-service/internal/models"
)

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name        string
		stored      string
		supplied    string
		allowLegacy bool
		wantOK      bool
		wantUpgrade bool
	}{
		{name: "bcrypt match", stored: string(hash), supplied: "secret123", allowLegacy: true, wantOK: true},
		{name: "bcrypt mismatch", stored: string(hash), supplied: "wrong", allowLegacy: true},
		{name: "legacy match", stored: "plaintext", supplied: "plaintext", allowLegacy: true, wantOK: true, wantUpgrade: true},
		{name: "legacy mismatch", stored: "plaintext", supplied: "other", allowLegacy: true},
		{name: "legacy disabled", stored: "plaintext", supplied: "plaintext", allowLegacy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, upgrade := checkPassword(tt.stored, tt.supplied, tt.allowLegacy)
			if ok != tt.wantOK || upgrade != tt.wantUpgrade {
				t.Errorf("checkPassword() = (%v, %v), want (%v, %v)", ok, upgrade, tt.wantOK, tt.wantUpgrade)
			}
		})
	}
}

func TestUserServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService(t, true)

	password := "secret123"
	req := &CreateUserRequest{
		PhoneNumber: "13900000001",
		Name:        "Test Participant",
		Role:        models.RoleParticipant,
		Password:    &password,
	}

	user, err := svc.Create(env.ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Password == nil || !strings.HasPrefix(*user.Password, "$2") {
		t.Errorf("password not bcrypt hashed")
	}

	if _, err := svc.Create(env.ctx, req); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate create: got %v, want ErrUserExists", err)
	}
}

func TestUserServiceLoginUpgradesLegacyCredential(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService(t, true)

	user := env.seedUser(t, "13900000002", "Legacy User")
	plain := "oldpassword"
	user.Password = &plain
	if err := env.repo.User().Update(env.ctx, nil, user); err != nil {
		t.Fatalf("store legacy credential: %v", err)
	}

	loggedIn, err := svc.Login(env.ctx, &LoginRequest{PhoneNumber: user.PhoneNumber, Password: plain})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.Password == nil || !strings.HasPrefix(*loggedIn.Password, "$2") {
		t.Errorf("credential not upgraded to bcrypt")
	}

	// Second login must verify against the new hash.
	if _, err := svc.Login(env.ctx, &LoginRequest{PhoneNumber: user.PhoneNumber, Password: plain}); err != nil {
		t.Errorf("login after upgrade: %v", err)
	}

	if _, err := svc.Login(env.ctx, &LoginRequest{PhoneNumber: user.PhoneNumber, Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserServiceLoginLegacyDisabled(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService(t, false)

	user := env.seedUser(t, "13900000003", "Legacy User")
	plain := "oldpassword"
	user.Password = &plain
	if err := env.repo.User().Update(env.ctx, nil, user); err != nil {
		t.Fatalf("store legacy credential: %v", err)
	}

	if _, err := svc.Login(env.ctx, &LoginRequest{PhoneNumber: user.PhoneNumber, Password: plain}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("legacy login with fallback disabled: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserServiceConsentIsOneWay(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService(t, true)

	user := env.seedUser(t, "13900000004", "Consenting User")

	updated, err := svc.UpdateConsent(env.ctx, user.PhoneNumber, true)
	if err != nil {
		t.Fatalf("UpdateConsent(true): %v", err)
	}
	if !updated.ConsentGiven {
		t.Fatalf("consent not recorded")
	}

	// Revocation attempt leaves the flag set.
	updated, err = svc.UpdateConsent(env.ctx, user.PhoneNumber, false)
	if err != nil {
		t.Fatalf("UpdateConsent(false): %v", err)
	}
	if !updated.ConsentGiven {
		t.Errorf("consent was revoked; transition must be one-way")
	}

	if _, err := svc.UpdateConsent(env.ctx, "00000000000", true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestUserServiceDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	userSvc := env.userService(t, true)
	assignSvc := env.assignmentService(t)
	logSvc := env.logService(t)

	user := env.seedUser(t, "13900000005", "Doomed User")
	material := env.seedMaterial(t, "mat-cascade-user", "Material")

	if _, err := assignSvc.Assign(env.ctx, material.ID, []string{user.PhoneNumber}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := logSvc.Record(env.ctx, &CreateLogRequest{UserID: user.PhoneNumber, Action: "login"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := userSvc.Delete(env.ctx, user.PhoneNumber); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := userSvc.GetByPhone(env.ctx, user.PhoneNumber); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("user still present after delete")
	}
	logs, err := logSvc.ListByUser(env.ctx, user.PhoneNumber)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("logs not cascaded: %d remain", len(logs))
	}
	stats, err := env.repo.Assignment().StatsByMaterial(env.ctx, nil, material.ID)
	if err != nil {
		t.Fatalf("StatsByMaterial: %v", err)
	}
	if stats.AssignedCount != 0 {
		t.Errorf("assignments not cascaded: %d remain", stats.AssignedCount)
	}
}
