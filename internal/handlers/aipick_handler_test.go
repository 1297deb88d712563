package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/recommend"
	"github.com/modurim/homepick-api/internal/service"
	"github.com/modurim/homepick-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAiPickRouter(provider *testutil.MockRoutineProvider) (*gin.Engine, *testutil.MockRoutineHistoryRepo) {
	histories := testutil.NewMockRoutineHistoryRepo()
	appliances := testutil.NewMockApplianceRepo()
	for _, a := range testutil.TestAppliances() {
		appliances.Appliances[a.ID] = a
	}

	svc := service.NewRecommendService(&config.Config{}, provider, recommend.NewStore(), histories, appliances, nil)
	handler := NewAiPickHandler(svc)

	r := gin.New()
	r.POST("/ai-pick/recommend", handler.Recommend)
	r.GET("/ai-pick/recommend", handler.Current)
	r.POST("/ai-pick/recommend/accept", handler.Accept)
	r.POST("/ai-pick/recommend/reject", handler.Reject)
	r.POST("/ai-pick/recommend/refresh", handler.Refresh)
	return r, histories
}

func staticRoutineProvider() *testutil.MockRoutineProvider {
	return &testutil.MockRoutineProvider{
		RecommendRoutineFunc: func(ctx context.Context, situation string, userID uint) (*ai.RoutineResult, error) {
			return testutil.TestRoutineResult(), nil
		},
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestRecommend_MissingUserID(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend", strings.NewReader(`{"situation":"더워요"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400. body: %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestRecommend_MissingSituation(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend?userId=1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRecommend_ThenCurrent(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend?userId=1", strings.NewReader(`{"situation":"너무 더워요"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("recommend status = %d. body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/ai-pick/recommend?userId=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("current status = %d. body: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatal("response should carry a data object")
	}
	if data["situation"] != "너무 더워요" {
		t.Errorf("situation = %v", data["situation"])
	}
	if data["routine"] == "" {
		t.Error("routine should be populated")
	}
}

func TestCurrent_Empty(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("GET", "/ai-pick/recommend?userId=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAccept_EmptySlot(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend/accept?userId=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAccept_DuplicateIsConflict(t *testing.T) {
	r, histories := newAiPickRouter(staticRoutineProvider())

	propose := func() {
		req := httptest.NewRequest("POST", "/ai-pick/recommend?userId=1", strings.NewReader(`{"situation":"너무 더워요"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("propose status = %d", w.Code)
		}
	}

	propose()
	req := httptest.NewRequest("POST", "/ai-pick/recommend/accept?userId=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first accept status = %d. body: %s", w.Code, w.Body.String())
	}

	propose()
	req = httptest.NewRequest("POST", "/ai-pick/recommend/accept?userId=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("second accept status = %d, want 409. body: %s", w.Code, w.Body.String())
	}

	if count, _ := histories.CountByUser(1); count != 1 {
		t.Errorf("history count = %d, want 1", count)
	}
}

func TestReject_ThenCurrentIsGone(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend?userId=1", strings.NewReader(`{"situation":"더워요"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	req = httptest.NewRequest("POST", "/ai-pick/recommend/reject?userId=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("reject status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/ai-pick/recommend?userId=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("current after reject = %d, want 404", w.Code)
	}
}

func TestRefresh_WithoutProposal(t *testing.T) {
	r, _ := newAiPickRouter(staticRoutineProvider())

	req := httptest.NewRequest("POST", "/ai-pick/recommend/refresh?userId=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
