// Package http implements the HTTP transport layer of the configuration
// registry.
//
// It exposes route wiring, request handlers, and middleware for the public
// config-lookup endpoint and the admin CRUD surface. Cross-cutting concerns
// such as request tracing, access logging, and panic recovery are handled in
// this package before requests are delegated to the service layer.
package http
