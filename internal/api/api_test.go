package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/razdelilnica/internal/auth"
	"github.com/erazemk/razdelilnica/internal/db"
	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create admin user.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, "admin", string(hash), model.RoleAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRecipientsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create recipient.
	req, _ := authRequest("POST", server.URL+"/api/recipients", token, map[string]string{
		"name": "Alice",
		"kind": model.RecipientIndividual,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List recipients.
	req, _ = authRequest("GET", server.URL+"/api/recipients", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var recipients []model.Recipient
	json.NewDecoder(resp.Body).Decode(&recipients)
	resp.Body.Close()
	if len(recipients) != 1 {
		t.Errorf("expected 1 recipient, got %d", len(recipients))
	}
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create item.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":     "Orange Juice",
		"category": model.CategoryBeverage,
		"stock":    10,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate name in the same category conflicts.
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":     "Orange Juice",
		"category": model.CategoryBeverage,
		"stock":    5,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List items.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDistributionsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create an item and a recipient to distribute to.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":     "Apples",
		"category": model.CategoryFruit,
		"stock":    10,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating item: expected 201, got %d", resp.StatusCode)
	}
	var item model.Item
	json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/recipients", token, map[string]string{
		"name": "Alice",
		"kind": model.RecipientIndividual,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating recipient: expected 201, got %d", resp.StatusCode)
	}
	var recipient model.Recipient
	json.NewDecoder(resp.Body).Decode(&recipient)
	resp.Body.Close()

	// Assign 5 apples under the seeded emergency drive.
	req, _ = authRequest("POST", server.URL+"/api/distributions", token, map[string]any{
		"item_id":      item.ID,
		"recipient_id": recipient.ID,
		"donation_id":  1,
		"quantity":     5,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("assigning: expected 201, got %d", resp.StatusCode)
	}
	var distribution model.Distribution
	json.NewDecoder(resp.Body).Decode(&distribution)
	resp.Body.Close()
	if distribution.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", distribution.Quantity)
	}

	// Stock reflects the assignment.
	req, _ = authRequest("GET", server.URL+"/api/items/"+itoa(item.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()
	if item.Stock != 5 {
		t.Errorf("expected stock 5 after assignment, got %d", item.Stock)
	}

	// Over the individual cap is a 400.
	req, _ = authRequest("POST", server.URL+"/api/distributions", token, map[string]any{
		"item_id":      item.ID,
		"recipient_id": recipient.ID,
		"donation_id":  1,
		"quantity":     6,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for cap violation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown donation is a 404.
	req, _ = authRequest("POST", server.URL+"/api/distributions", token, map[string]any{
		"item_id":      item.ID,
		"recipient_id": recipient.ID,
		"donation_id":  999,
		"quantity":     1,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown donation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Deleting the item while assigned conflicts.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+itoa(item.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 deleting assigned item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Reverse the assignment; stock returns.
	req, _ = authRequest("DELETE",
		server.URL+"/api/distributions/"+itoa(item.ID)+"/"+itoa(recipient.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reversing: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/items/"+itoa(item.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()
	if item.Stock != 10 {
		t.Errorf("expected stock restored to 10, got %d", item.Stock)
	}

	// Reversing again is a 404.
	req, _ = authRequest("DELETE",
		server.URL+"/api/distributions/"+itoa(item.ID)+"/"+itoa(recipient.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 reversing missing assignment, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoleBasedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create a regular user.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, "user1", string(hash), model.RoleUser)

	userToken, _ := auth.GenerateToken(testJWTSecret, 1, "user1", model.RoleUser)

	// Regular user should not be able to create items (manager+ required).
	req, _ := authRequest("POST", server.URL+"/api/items", userToken, map[string]any{
		"name":     "Test",
		"category": model.CategoryFruit,
		"stock":    1,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user creating item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular user should not access /api/users.
	req, _ = authRequest("GET", server.URL+"/api/users", userToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user accessing users, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular users may record distributions.
	req, _ = authRequest("GET", server.URL+"/api/distributions", userToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for user listing distributions, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The revoked token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
