// Package config loads process configuration: environment files and the
// YAML description of an agent graph.
//
// An agents file declares agents, their tools (by registry name) and their
// handoffs:
//
//	start: Triage Agent
//	context_variables:
//	  user_name: Ada
//	agents:
//	  - name: Triage Agent
//	    instructions: Route the user to the right specialist.
//	    handoffs:
//	      - to: Weather Agent
//	  - name: Weather Agent
//	    instructions: Help {{.user_name}} with the weather.
//	    template: true
//	    tools: [get_weather]
//	    handoffs:
//	      - to: Triage Agent
//	        tool: transfer_back_to_triage
//
// Instructions are sent verbatim unless template is set, in which case they
// are rendered as a text/template over the context variables on every turn.
//
// ${VAR} and ${VAR:-default} references are expanded from the environment
// before parsing. A bare $VAR is kept as written.
package config
