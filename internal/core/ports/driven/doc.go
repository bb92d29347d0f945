// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentLoader: Reads raw documents from an input file set
//   - LoaderFactory: Creates loaders from configured paths
//   - Normaliser: Transforms raw documents into normalised form
//   - NormaliserRegistry: Selects a normaliser by source
//   - TextCleaner: Strips markup and noise from text
//   - PostProcessor: Creates, filters or enriches chunks
//   - ProcessorRegistry: Builds post-processors from generic config
//   - ChunkSink: Persists the final chunks
//   - SinkFactory: Creates sinks from pipeline options
//   - RecordReader: Reads persisted output back
//   - ChangeWatcher: Reports changes to input paths (watch mode)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
