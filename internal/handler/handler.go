// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// Every resource handler goes through Handle or HandleNoContent so
// binding, logging and tracing look the same on every route.
package handler
