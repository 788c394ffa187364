// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Hub: The retrieval backend (search, neighbours, translation, DRES)
//   - HistoryStore: Session-scoped search history persistence
//   - ExclusionStore: Frames to skip in subsequent searches
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
