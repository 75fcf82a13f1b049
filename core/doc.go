// Package core provides the foundational domain types and contracts of the
// swarm orchestration layer. It defines:
//
//   - Agents (named policies: instructions plus an ordered tool list)
//   - Messages and tool calls (the conversation's unit of record)
//   - The tool dispatch contract (ordinary results vs. handoffs)
//   - Chunks and ChunkStream (the streaming protocol between runner and renderer)
//   - The handoff Graph built once at setup time
//   - The Runner contract implemented by model-backed runners
//
// Implementation concerns (model providers, rendering, the conversation loop)
// live in sibling packages and depend on the small interfaces defined here.
package core
