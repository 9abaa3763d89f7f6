// Package domain defines the core domain types and interfaces.
//
// No implementation code lives here - just model types, sentinel errors and
// the contracts the adapters implement. Keeping interfaces on the consumer
// side prevents circular imports between the app layer and the stores.
package domain
