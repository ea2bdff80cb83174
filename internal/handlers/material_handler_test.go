package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/services"
)

type stubMaterialService struct {
	material *models.Material
	err      error
}

func (s *stubMaterialService) Create(ctx context.Context, req *services.CreateMaterialRequest) (*models.Material, error) {
	return s.material, s.err
}

func (s *stubMaterialService) GetByID(ctx context.Context, id string) (*models.Material, error) {
	return s.material, s.err
}

func (s *stubMaterialService) List(ctx context.Context) ([]*models.Material, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Material{s.material}, nil
}

func (s *stubMaterialService) Update(ctx context.Context, id string, req *services.UpdateMaterialRequest) (*models.Material, error) {
	return s.material, s.err
}

func (s *stubMaterialService) Delete(ctx context.Context, id string) error {
	return s.err
}

type stubAssignmentService struct {
	material   *models.Material
	markResult *services.MarkReadResult
	err        error

	lastUserIDs []string
}

func (s *stubAssignmentService) Assign(ctx context.Context, materialID string, userIDs []string) (*models.Material, error) {
	s.lastUserIDs = userIDs
	return s.material, s.err
}

func (s *stubAssignmentService) Unassign(ctx context.Context, materialID, userID string) error {
	return s.err
}

func (s *stubAssignmentService) MarkRead(ctx context.Context, materialID, userID string) (*services.MarkReadResult, error) {
	return s.markResult, s.err
}

func (s *stubAssignmentService) MarkUnread(ctx context.Context, materialID, userID string) (*models.MaterialAssignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.MaterialAssignment{MaterialID: materialID, UserID: userID}, nil
}

func (s *stubAssignmentService) ListForUser(ctx context.Context, userID string) ([]*services.AssignedMaterial, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*services.AssignedMaterial{{Material: s.material, ReadStatus: true}}, nil
}

func newMaterialRouter(materialSvc services.MaterialService, assignSvc services.AssignmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewMaterialHandler(materialSvc, assignSvc, testLogger())

	router.POST("/api/materials/:id/assign", handler.AssignMaterial)
	router.PUT("/api/materials/:id/mark-read/:user_id", handler.MarkRead)
	router.PUT("/api/materials/:id/mark-unread/:user_id", handler.MarkUnread)
	return router
}

func TestAssignMaterialRequiresUserIDs(t *testing.T) {
	material := &models.Material{ID: "mat-1", Title: "M"}
	assign := &stubAssignmentService{material: material}
	router := newMaterialRouter(&stubMaterialService{material: material}, assign)

	req := httptest.NewRequest(http.MethodPost, "/api/materials/mat-1/assign",
		strings.NewReader(`{"userIds":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty userIds: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/materials/mat-1/assign",
		strings.NewReader(`{"userIds":["13800138001","13800138002"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if len(assign.lastUserIDs) != 2 {
		t.Errorf("userIds not forwarded: %v", assign.lastUserIDs)
	}
}

func TestMarkReadReportsAutoAssignment(t *testing.T) {
	assignment := &models.MaterialAssignment{MaterialID: "mat-1", UserID: "13800138001", ReadStatus: true}
	assign := &stubAssignmentService{
		markResult: &services.MarkReadResult{MaterialAssignment: assignment, AutoAssigned: true},
	}
	router := newMaterialRouter(&stubMaterialService{}, assign)

	req := httptest.NewRequest(http.MethodPut, "/api/materials/mat-1/mark-read/13800138001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		ReadStatus   bool `json:"readStatus"`
		AutoAssigned bool `json:"autoAssigned"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.ReadStatus || !body.AutoAssigned {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestMarkUnreadWithoutAssignmentIs404(t *testing.T) {
	router := newMaterialRouter(&stubMaterialService{}, &stubAssignmentService{err: services.ErrAssignmentNotFound})

	req := httptest.NewRequest(http.MethodPut, "/api/materials/mat-1/mark-unread/13800138001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
