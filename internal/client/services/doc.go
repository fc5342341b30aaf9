// Package services contains the application services of the portal client:
// the session lifecycle service, which owns the local credential record, and
// the API-key service over the backend's key-management endpoints.
package services
