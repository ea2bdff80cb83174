package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/repositories/postgres"
	"github.com/NJ-LDS/reading-service/internal/testutil"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

// testEnv wires real services over a rolled-back transaction. Services opening
// their own transactions nest inside it via savepoints.
type testEnv struct {
	ctx       context.Context
	tx        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	return &testEnv{
		ctx:       context.Background(),
		tx:        tx,
		repo:      postgres.NewPostgreSQLRepository(tx),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: validator.New(),
	}
}

func (e *testEnv) userService(t *testing.T, allowLegacy bool) UserService {
	t.Helper()
	return NewUserService(e.repo, e.tx, e.logger, e.validator, allowLegacy)
}

func (e *testEnv) materialService(t *testing.T) MaterialService {
	t.Helper()
	return NewMaterialService(e.repo, e.tx, e.logger, e.validator)
}

func (e *testEnv) assignmentService(t *testing.T) AssignmentService {
	t.Helper()
	return NewAssignmentService(e.repo, e.tx, e.logger)
}

func (e *testEnv) formService(t *testing.T) FormService {
	t.Helper()
	return NewFormService(e.repo, e.tx, e.logger, e.validator)
}

func (e *testEnv) formConfigService(t *testing.T) FormConfigService {
	t.Helper()
	return NewFormConfigService(e.repo, e.tx, e.logger, e.validator)
}

func (e *testEnv) responseService(t *testing.T) ResponseService {
	t.Helper()
	return NewResponseService(e.repo, e.tx, e.logger, e.validator)
}

func (e *testEnv) logService(t *testing.T) LogService {
	t.Helper()
	return NewLogService(e.repo, e.tx, e.logger, e.validator)
}

// seedUser inserts a participant directly through the repository.
func (e *testEnv) seedUser(t *testing.T, phone, name string) *models.User {
	t.Helper()
	user := &models.User{
		PhoneNumber: phone,
		Name:        name,
		Role:        models.RoleParticipant,
	}
	if err := e.repo.User().Create(e.ctx, nil, user); err != nil {
		t.Fatalf("seed user %s: %v", phone, err)
	}
	return user
}

func (e *testEnv) seedMaterial(t *testing.T, id, title string) *models.Material {
	t.Helper()
	material := &models.Material{
		ID:      id,
		Title:   title,
		Author:  "Unknown",
		Type:    models.MaterialText,
		Content: "body",
	}
	if err := e.repo.Material().Create(e.ctx, nil, material); err != nil {
		t.Fatalf("seed material %s: %v", id, err)
	}
	return material
}

func (e *testEnv) seedForm(t *testing.T, id, title string, formType models.FormType) *models.Form {
	t.Helper()
	form := &models.Form{
		ID:      id,
		Title:   title,
		Type:    formType,
		Content: "<p>form</p>",
	}
	if err := e.repo.Form().Create(e.ctx, nil, form); err != nil {
		t.Fatalf("seed form %s: %v", id, err)
	}
	return form
}
