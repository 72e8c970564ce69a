package routes

import (
	"net/http"
	"testing"

	"train-feedback-server/database"
	"train-feedback-server/models"
)

func stagedRecord(feedbackNo int, mobile string) map[string]interface{} {
	return map[string]interface{}{
		"feedbackNo":   feedbackNo,
		"trainNo":      "12301",
		"trainName":    "Howrah Rajdhani Express",
		"date":         "2024-03-15",
		"coachNo":      "B1",
		"pnr":          "4521036985",
		"mobile":       mobile,
		"psi":          80,
		"reportDate":   "2024-03-15",
		"feedbackText": "Staged record",
		"valid":        true,
	}
}

func TestSubmitBulkFeedbackCommitsBatch(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	payload := map[string]interface{}{
		"feedbacks": []interface{}{
			stagedRecord(1, "9830012345"),
			stagedRecord(2, "9830012346"),
			stagedRecord(3, "9830012347"),
		},
	}
	w := performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", payload)
	mustStatus(t, w, http.StatusCreated)
	if body := decodeBody(t, w); body["count"].(float64) != 3 {
		t.Errorf("count = %v, want 3", body["count"])
	}

	var count int64
	database.DB.Model(&models.Feedback{}).Count(&count)
	if count != 3 {
		t.Errorf("persisted %d records, want 3", count)
	}
}

func TestSubmitBulkFeedbackRejectsWholeBatchOnOneInvalid(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	payload := map[string]interface{}{
		"feedbacks": []interface{}{
			stagedRecord(1, "9830012345"),
			stagedRecord(2, "bad-mobile"), // marked valid by the client but re-checked here
			stagedRecord(3, "9830012347"),
		},
	}
	w := performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", payload)
	mustStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	invalid := body["invalidFeedbacks"].([]interface{})
	if len(invalid) != 1 {
		t.Fatalf("expected 1 invalid record, got %v", invalid)
	}
	entry := invalid[0].(map[string]interface{})
	if entry["feedbackNo"].(float64) != 2 {
		t.Errorf("wrong record flagged: %v", entry)
	}

	// Nothing was committed
	var count int64
	database.DB.Model(&models.Feedback{}).Count(&count)
	if count != 0 {
		t.Errorf("partial commit: %d records persisted", count)
	}
}

func TestSubmitBulkFeedbackRejectsDuplicateNumbersInBatch(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	// Same number twice for one train/date batch
	payload := map[string]interface{}{
		"feedbacks": []interface{}{
			stagedRecord(1, "9830012345"),
			stagedRecord(2, "9830012346"),
			stagedRecord(2, "9830012347"),
		},
	}
	w := performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", payload)
	mustStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	invalid := body["invalidFeedbacks"].([]interface{})
	if len(invalid) != 1 {
		t.Fatalf("expected 1 invalid record, got %v", invalid)
	}
	entry := invalid[0].(map[string]interface{})
	if entry["feedbackNo"].(float64) != 2 {
		t.Errorf("wrong record flagged: %v", entry)
	}

	var count int64
	database.DB.Model(&models.Feedback{}).Count(&count)
	if count != 0 {
		t.Errorf("partial commit: %d records persisted", count)
	}

	// The same number on a different train is a different batch and is fine
	other := stagedRecord(1, "9830012346")
	other["trainNo"] = "12841"
	w = performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", map[string]interface{}{
		"feedbacks": []interface{}{
			stagedRecord(1, "9830012345"),
			other,
		},
	})
	mustStatus(t, w, http.StatusCreated)
}

func TestSubmitBulkFeedbackRejectsEmptyBatch(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	w := performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", map[string]interface{}{
		"feedbacks": []interface{}{},
	})
	mustStatus(t, w, http.StatusBadRequest)
	if body := decodeBody(t, w); body["message"] != "No feedbacks to submit" {
		t.Errorf("message = %v", body["message"])
	}

	w = performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", map[string]interface{}{})
	mustStatus(t, w, http.StatusBadRequest)
}

func TestSubmitBulkFeedbackIgnoresStagedIDs(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	record := stagedRecord(1, "9830012345")
	record["id"] = 777
	w := performJSON(t, router, http.MethodPost, "/api/v1/feedback/submit-bulk", map[string]interface{}{
		"feedbacks": []interface{}{record},
	})
	mustStatus(t, w, http.StatusCreated)

	var stored models.Feedback
	if err := database.DB.First(&stored).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if stored.ID == 777 {
		t.Error("client-supplied ID should not be honored")
	}
}
