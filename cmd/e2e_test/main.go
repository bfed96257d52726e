package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:8080"

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Both portfolio views are served
	checkEndpoint("GET", "/api/uk", nil, 200)
	checkEndpoint("GET", "/api/us", nil, 200)

	// 3. Add a holding (symbol is uppercased server-side)
	checkEndpoint("POST", "/api/uk/submit", map[string]interface{}{
		"symbol":     "vod",
		"sharesHeld": 100,
	}, 200)

	// 4. Edit it: start an edit session, then submit new shares
	checkEndpoint("POST", "/api/uk/edit/VOD", nil, 200)
	checkEndpoint("POST", "/api/uk/submit", map[string]interface{}{
		"symbol":     "VOD",
		"sharesHeld": 150,
	}, 200)

	// 5. Manual refresh is idempotent
	checkEndpoint("POST", "/api/uk/refresh", nil, 200)

	// 6. Editing then cancelling leaves the list untouched
	checkEndpoint("POST", "/api/uk/edit/VOD", nil, 200)
	checkEndpoint("POST", "/api/uk/cancel", nil, 200)

	// 7. Delete it again
	checkEndpoint("DELETE", "/api/uk/holdings/VOD", nil, 200)

	// 8. Deleting a missing symbol is a 404, unknown portfolio too
	checkEndpoint("DELETE", "/api/uk/holdings/VOD", nil, 404)
	checkEndpoint("GET", "/api/jp", nil, 404)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}
