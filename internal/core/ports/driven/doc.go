// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The parser, the summariser, the embedding
// model and the vector store are external collaborators: the core treats
// them as black boxes with the contracts defined here.
package driven
