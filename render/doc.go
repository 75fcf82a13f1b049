// Package render turns runner output into a human readable transcript.
//
// Two paths reconstruct the same view of agent output:
//
//   - Aggregator / ProcessStream fold a streaming run chunk by chunk, printing
//     fragments as they arrive and returning the terminal response.
//   - PrintMessages formats the completed messages of a batch run.
//
// Both only write to the supplied io.Writer and never read input.
package render
