// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ImageSource: Enumerates and decodes images in a folder
//   - DocumentComposer: Builds a PDF from placed images
//   - DocumentSecurity: Reads, encrypts and decrypts PDFs
//   - Rasterizer: Renders PDF pages to image files
//   - ConfigStore: Application configuration
//   - HistoryStore: Operation history persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImageExtractor: Extracts embedded images. Without it, --embedded is unavailable.
//   - FolderWatcher: Watches a folder for changes. Without it, --watch is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
