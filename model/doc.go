// Package model defines the provider-agnostic abstractions for talking to
// language models.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Speak the conversation's own message type (core.Message) so providers
//     translate once, at the edge
//   - Facilitate deterministic tests (ScriptedModel)
//
// Providers (model/openai, model/anthropic) implement Model so the runner
// stays decoupled from vendor SDKs.
package model
