package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecommendRoutine_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend_routine/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["situation"] != "너무 더워요" {
			t.Errorf("situation = %v", req["situation"])
		}
		if req["userId"] != float64(1) {
			t.Errorf("userId = %v", req["userId"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"routine": "에어컨을 켭니다.",
			"updates": []map[string]interface{}{
				{"appliance_id": 1, "onoff": "on", "state": "냉방", "is_active": true},
			},
		})
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	result, err := client.RecommendRoutine(context.Background(), "너무 더워요", 1)
	if err != nil {
		t.Fatalf("RecommendRoutine: %v", err)
	}
	if result.Routine != "에어컨을 켭니다." {
		t.Errorf("Routine = %q", result.Routine)
	}
	if len(result.Updates) != 1 || result.Updates[0].ApplianceID != 1 {
		t.Errorf("Updates = %+v", result.Updates)
	}
	if result.Updates[0].OnOff == nil || *result.Updates[0].OnOff != "on" {
		t.Errorf("OnOff = %v", result.Updates[0].OnOff)
	}
}

func TestRecommendRoutine_EmptyUpdatesListIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routine":"창문을 여세요.","updates":[]}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	result, err := client.RecommendRoutine(context.Background(), "답답해요", 1)
	if err != nil {
		t.Fatalf("RecommendRoutine: %v", err)
	}
	if len(result.Updates) != 0 {
		t.Errorf("Updates = %+v, want empty", result.Updates)
	}
}

func TestRecommendRoutine_MissingUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routine":"에어컨을 켭니다."}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.RecommendRoutine(context.Background(), "더워요", 1); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestRecommendRoutine_InvalidOnOff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routine":"r","updates":[{"appliance_id":1,"onoff":"standby"}]}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.RecommendRoutine(context.Background(), "더워요", 1); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestRecommendRoutine_MissingApplianceID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routine":"r","updates":[{"onoff":"on"}]}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.RecommendRoutine(context.Background(), "더워요", 1); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestRecommendRoutine_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.RecommendRoutine(context.Background(), "더워요", 1); err == nil {
		t.Error("RecommendRoutine should fail on a 503")
	}
}

func TestRecommendRoutine_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.RecommendRoutine(context.Background(), "더워요", 1); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAnalyzeVoice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze_voice/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "voice.wav" {
			t.Errorf("filename = %q", header.Filename)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"situation": "퇴근하고 (피곤) 쉬고 싶어요",
			"routine":   "조명을 은은하게 켭니다.",
			"updates": []map[string]interface{}{
				{"appliance_id": 3, "onoff": "on", "state": "무드", "is_active": true},
			},
		})
	}))
	defer server.Close()

	wavPath := filepath.Join(t.TempDir(), "voice.wav")
	if err := os.WriteFile(wavPath, []byte("RIFF fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewAnalysisClient(server.URL, 5*time.Second)
	result, err := client.AnalyzeVoice(context.Background(), wavPath)
	if err != nil {
		t.Fatalf("AnalyzeVoice: %v", err)
	}
	if result.Situation != "퇴근하고 (피곤) 쉬고 싶어요" {
		t.Errorf("Situation = %q", result.Situation)
	}
	if result.Routine != "조명을 은은하게 켭니다." {
		t.Errorf("Routine = %q", result.Routine)
	}
	if len(result.Updates) != 1 || result.Updates[0].ApplianceID != 3 {
		t.Errorf("Updates = %+v", result.Updates)
	}
}

func TestAnalyzeVoice_MissingSituation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routine":"r","updates":[]}`))
	}))
	defer server.Close()

	wavPath := filepath.Join(t.TempDir(), "voice.wav")
	if err := os.WriteFile(wavPath, []byte("RIFF fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewAnalysisClient(server.URL, 5*time.Second)
	if _, err := client.AnalyzeVoice(context.Background(), wavPath); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAnalyzeVoice_MissingFile(t *testing.T) {
	client := NewAnalysisClient("http://127.0.0.1:0", time.Second)
	if _, err := client.AnalyzeVoice(context.Background(), "/nonexistent/voice.wav"); err == nil {
		t.Error("AnalyzeVoice should fail for a missing recording")
	}
}
