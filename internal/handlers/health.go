package handlers

import "net/http"

// Root answers the unauthenticated liveness probe fleet clients hit first.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello World",
		"status":  "API is running",
	})
}

// Healthz is the deployment health check.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
