// Package release models standing customer orders and the loads they are split
// into.
//
// A Release is never marked complete directly: its Status is derived from its
// loads by RecomputeStatus whenever a load changes state.
//
// Load lifecycle:
//
//	PENDING ──Ship──> SHIPPED
//	   ^                 │
//	   └─────Revert──────┘
//	PENDING ──Cancel──> CANCELLED (terminal)
//
// A load references a shipping document if and only if it is SHIPPED.
package release
