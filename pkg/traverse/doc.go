// Package traverse walks a part drawing from its seed connector and numbers
// every connector it reaches.
//
// The [Engine] is a small state machine:
//
//	Seeking ──seed found──▶ Visiting ──no candidates──▶ Exhausted
//	   │                      │  ▲
//	   │                      │  └─next unvisited candidate
//	   │                      ├──top candidate already visited──▶ CycleDetected
//	   └──────────────────────┴──resolver error──▶ Error
//
// Exhausted and CycleDetected are successful outcomes; both carry a
// [connector.Mapping]. A cycle is reported as a CYCLE_DETECTED warning on the
// [Result] rather than as an error, since the numbering up to that point is
// still usable. Error carries no mapping.
//
// The engine trusts the [resolve.Resolver] for candidate order and only ever
// takes the first one.
package traverse
