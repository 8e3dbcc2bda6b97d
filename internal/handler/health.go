package handler

import "net/http"

// GetHealth reports process liveness. It deliberately does not touch the
// database so a slow pool cannot fail the probe.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
