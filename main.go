// main.go - Standalone Red Flag Filter dashboard server
//
// Minimal single-binary variant of the service: the same detection engine
// as cmd/api behind the flat route layout the original dashboard used. No
// Redis, no WebSocket, no config file - flags and env only.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"redflag-lab/internal/domain/services/alerts"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type testMessageRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type dashboardServer struct {
	detector *detection.Service
}

func newDashboardServer() (*dashboardServer, error) {
	catalog, err := detection.NewCatalog(detection.DefaultCategories())
	if err != nil {
		return nil, err
	}
	store := alerts.NewStore(alerts.DefaultCapacity)
	detector := detection.NewService(logger.NewDefault(), catalog, store, nil)
	return &dashboardServer{detector: detector}, nil
}

func (s *dashboardServer) respond(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// handleTestMessage classifies a message without touching the alert store;
// ad-hoc probes from the dashboard form never become alerts.
func (s *dashboardServer) handleTestMessage(w http.ResponseWriter, r *http.Request) {
	var req testMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respond(w, http.StatusBadRequest, APIResponse{Success: false, Error: "invalid request body"})
		return
	}

	result, err := s.detector.Classify(r.Context(), req.Message)
	if err != nil {
		s.respond(w, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	s.respond(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

func (s *dashboardServer) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, APIResponse{Success: true, Data: s.detector.Alerts(50)})
}

func (s *dashboardServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, APIResponse{Success: true, Data: s.detector.Stats()})
}

// handleGenerateDemoData runs a few canned scam messages through the
// classifier so the dashboard has data to show.
func (s *dashboardServer) handleGenerateDemoData(w http.ResponseWriter, r *http.Request) {
	samples := []testMessageRequest{
		{Sender: "@love_bomber_user", Message: "You're perfect and we're soulmates, I've never felt this way!"},
		{Sender: "@financial_scammer", Message: "I need emergency money, can you send $500 on Venmo?"},
		{Sender: "@boundary_violator", Message: "Why aren't you responding? You don't care about me. Answer me!"},
	}

	generated := 0
	for _, m := range samples {
		if _, alert, err := s.detector.ClassifyAndRecord(r.Context(), m.Sender, m.Message, time.Time{}); err == nil && alert != nil {
			generated++
		}
	}

	s.respond(w, http.StatusOK, APIResponse{
		Success: true,
		Message: fmt.Sprintf("created %d sample alerts", generated),
	})
}

func (s *dashboardServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, APIResponse{Success: true, Message: "healthy"})
}

func main() {
	server, err := newDashboardServer()
	if err != nil {
		log.Fatalf("failed to build detection engine: %v", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/test-message", server.handleTestMessage).Methods("POST")
	r.HandleFunc("/api/alerts", server.handleGetAlerts).Methods("GET")
	r.HandleFunc("/api/stats", server.handleGetStats).Methods("GET")
	r.HandleFunc("/api/generate-demo-data", server.handleGenerateDemoData).Methods("POST")
	r.HandleFunc("/health", server.handleHealth).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	addr := ":" + port
	log.Printf("red flag filter dashboard listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
