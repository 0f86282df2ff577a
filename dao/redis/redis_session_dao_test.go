package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"osm-report-server/db"
	"osm-report-server/models"
)

func testSession(id string) *models.Session {
	return &models.Session{
		ID:            id,
		BBox:          models.BoundingBox{MinLat: 51.500, MinLon: -0.125, MaxLat: 51.505, MaxLon: -0.115},
		FeatureTypes:  []string{"highway", "building"},
		Files:         []string{"osm_report.txt", "feature_rollup.csv"},
		TotalElements: 42,
		CreatedAt:     time.Now(),
	}
}

func TestRedisSessionDAO_UpsertSession_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)
	session := testSession("session123")

	// Act
	err := dao.UpsertSession(session, time.Hour)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	storedValue, err := mockClient.Get("report_session_v1:session123")
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var stored models.Session
	if err := json.Unmarshal([]byte(storedValue), &stored); err != nil {
		t.Fatalf("Failed to unmarshal stored session data: %v", err)
	}
	if stored.ID != session.ID {
		t.Errorf("Expected session ID %s, got %s", session.ID, stored.ID)
	}
	if len(stored.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(stored.Files))
	}
}

func TestRedisSessionDAO_GetSession_Success(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)

	if err := dao.UpsertSession(testSession("session123"), time.Hour); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := dao.GetSession("session123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.TotalElements != 42 {
		t.Errorf("Expected 42 total elements, got %d", got.TotalElements)
	}
	if got.BBox.MinLat != 51.500 {
		t.Errorf("Expected bbox min lat 51.500, got %f", got.BBox.MinLat)
	}
}

func TestRedisSessionDAO_GetSession_Missing(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)

	if _, err := dao.GetSession("missing"); err == nil {
		t.Fatalf("Expected an error, got nil")
	}
}

func TestRedisSessionDAO_GetSession_Expired(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)

	if err := dao.UpsertSession(testSession("session123"), -time.Second); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := dao.GetSession("session123"); err == nil {
		t.Fatalf("Expected an error for an expired session, got nil")
	}
}

func TestRedisSessionDAO_ListSessionIDs(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)

	if err := dao.UpsertSession(testSession("a"), time.Hour); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := dao.UpsertSession(testSession("b"), time.Hour); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	ids, err := dao.ListSessionIDs()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 session ids, got %d", len(ids))
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found["a"] || !found["b"] {
		t.Errorf("Expected ids a and b, got %v", ids)
	}
}

func TestRedisSessionDAO_DeleteSession(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSessionDAO(mockClient)

	if err := dao.UpsertSession(testSession("session123"), time.Hour); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := dao.DeleteSession("session123"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := dao.GetSession("session123"); err == nil {
		t.Fatalf("Expected the session to be gone")
	}
}
