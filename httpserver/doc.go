// Package httpserver provides the HTTP serving shell for the secret-store
// document encryption API.
//
// The server hosts the document endpoints from api/secretstorehandler
// behind request logging middleware, alongside the usual operational
// endpoints:
//
//	GET /livez    - liveness check
//	GET /readyz   - readiness check, reflecting the drain state
//	GET /drain    - mark the server not ready ahead of a shutdown
//	GET /undrain  - mark the server ready again
//	/debug/...    - pprof handlers, when enabled
//
// Prometheus metrics are served from a separate listener so that the
// metrics port never needs to be exposed alongside the API.
//
// The server itself holds no document or key state; draining exists purely
// so load balancers can rotate instances gracefully.
package httpserver
