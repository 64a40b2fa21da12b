package httpserver

import (
	"net/http"
)

type bootstrapOrgRequest struct {
	Name string `json:"name" validate:"omitempty,max=200"`
}

type bootstrapOrgResponse struct {
	Created bool   `json:"created"`
	OrgID   string `json:"orgId"`
	Slug    string `json:"slug,omitempty"`
}

// BootstrapOrg provisions an organization and owner membership for the
// current user on first login. Idempotent: an existing membership short-
// circuits with created=false.
func (s *Server) BootstrapOrg(w http.ResponseWriter, r *http.Request) {
	var req bootstrapOrgRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	res, err := s.Orgs.EnsureOnFirstLogin(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, bootstrapOrgResponse{Created: res.Created, OrgID: res.OrgID, Slug: res.Slug})
}
