// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArticleSource: Fetches pages of articles from the remote library
//   - SourceFactory: Creates article sources from account settings
//   - TemplateEngine: Renders user-editable templates
//   - VaultStore: Writes rendered articles into the local vault
//   - SyncStateStore: Cursor and guard persistence
//   - SyncRunStore: Run history persistence
//   - HighlightLocator: Decodes highlight position tokens
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
