package api

import (
	"net/http"

	"becat/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and status
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/status", s.handleStatus)

	// Catalog search
	s.router.HandleFunc("/search", s.handleSearch)

	// Search journal
	s.router.HandleFunc("/history", s.handleHistoryList)
	s.router.HandleFunc("/history/", s.handleHistoryRoutes) // GET /:id, GET /:id/raw

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    "becat HTTP API",
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /status - Shell and journal status",
			"GET /search?path=...&agent=...&recurse=1&isdir=1 - Search the backup catalog",
			"GET /history?limit=N - Recent journaled searches",
			"GET /history/:id - One journaled search",
			"GET /history/:id/raw - Raw shell output for a journaled search",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
