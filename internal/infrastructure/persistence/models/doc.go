// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain read models to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain types should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Repositories project persistence rows into domain read models
//
// Structure:
// - base.go: Base persistence model (id + timestamps)
// - partner.go: Customer, branch and operator master data
// - visit.go: Service visits and material sales
// - pricing.go: Per-customer and per-branch pricing records
// - snapshot.go: Persisted profitability report snapshots
package models
