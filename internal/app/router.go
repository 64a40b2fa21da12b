// Package app wires middleware, routes and readiness checks into the HTTP
// handler served by cmd/server.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/fairyhunter13/hireflow/internal/adapter/httpserver"
	"github.com/fairyhunter13/hireflow/internal/adapter/observability"
	"github.com/fairyhunter13/hireflow/internal/config"
	"github.com/fairyhunter13/hireflow/internal/service/ratelimiter"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// PublicBucketKey is the shared limiter bucket charged by the public
// candidate endpoints across all replicas.
const PublicBucketKey = "public-api"

// BuildRouter constructs the HTTP handler with all middlewares and routes.
// limiter may be nil; public routes then rely on the per-IP limit only.
func BuildRouter(cfg config.Config, srv *httpserver.Server, limiter ratelimiter.Limiter, readyz http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(30 * time.Second))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Session endpoints
	r.Post("/admin/login", srv.Login)
	r.Post("/admin/logout", srv.Logout)

	// Recruiter API: session required, mutations rate limited per IP.
	r.Route("/v1", func(api chi.Router) {
		api.Use(srv.Sessions.AuthRequired)
		api.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))

		api.Post("/orgs/bootstrap", srv.BootstrapOrg)

		api.Route("/orgs/{orgID}", func(org chi.Router) {
			org.Route("/candidates", func(c chi.Router) {
				c.Get("/", srv.ListCandidates)
				c.Post("/", srv.CreateCandidate)
				c.Route("/{candidateID}", func(cc chi.Router) {
					cc.Get("/", srv.GetCandidate)
					cc.Put("/", srv.UpdateCandidate)
					cc.Delete("/", srv.DeleteCandidate)
					cc.Put("/note", srv.UpdateCandidateNote)
					cc.Post("/cv", srv.UploadCandidateCV)
					cc.Post("/archive", srv.ArchiveCandidate)
					cc.Get("/invites", srv.ListInvites)
					cc.Post("/invites", srv.SendInvite)
					cc.Post("/invites/{inviteID}/revoke", srv.RevokeInvite)
				})
			})

			org.Route("/offers", func(o chi.Router) {
				o.Get("/", srv.ListOffers)
				o.Post("/", srv.CreateOffer)
				o.Route("/{offerID}", func(oo chi.Router) {
					oo.Get("/", srv.GetOffer)
					oo.Put("/", srv.UpdateOffer)
					oo.Delete("/", srv.DeleteOffer)
					oo.Get("/flow", srv.GetOfferFlow)
					oo.Post("/flow", srv.CreateOfferFlow)
				})
			})

			org.Route("/flows/{flowID}/items", func(f chi.Router) {
				f.Post("/", srv.AddFlowItem)
				f.Put("/reorder", srv.ReorderFlowItems)
				f.Delete("/{itemID}", srv.DeleteFlowItem)
			})

			org.Route("/tests", func(t chi.Router) {
				t.Post("/", srv.CreateTest)
				t.Route("/{testID}", func(tt chi.Router) {
					tt.Get("/", srv.GetTest)
					tt.Put("/", srv.UpdateTest)
					tt.Delete("/", srv.DeleteTest)
					tt.Post("/archive", srv.ArchiveTest)
					tt.Post("/duplicate", srv.DuplicateTest)
					tt.Post("/questions", srv.AddQuestion)
					tt.Put("/questions/reorder", srv.ReorderQuestions)
					tt.Put("/questions/{questionID}", srv.UpdateQuestion)
				})
			})

			org.Route("/submissions/{submissionID}", func(sub chi.Router) {
				sub.Get("/", srv.GetSubmission)
				sub.Post("/review", srv.AddReview)
				sub.Get("/review", srv.GetReview)
			})
		})
	})

	// Public candidate endpoints: the invite token is the only credential.
	// A shared Redis bucket caps global traffic on top of the per-IP limit.
	r.Route("/v1/public/orgs/{orgID}", func(pub chi.Router) {
		pub.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		pub.Use(ratelimiter.Middleware(limiter, PublicBucketKey))
		pub.Post("/invites/{token}/start", srv.StartSubmission)
		pub.Post("/submissions/answers", srv.SubmitAnswers)
	})

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	if readyz != nil {
		r.Get("/readyz", readyz)
	}

	return httpserver.SecurityHeaders(r)
}
