// Package resolve decides where a connector walk goes next.
//
// A [Resolver] answers two questions for the traversal engine: which element
// starts the walk ([Resolver.Seed]) and, given the current element, which
// elements may follow it ([Resolver.NextCandidates]). The engine takes the
// candidates in the order returned and never reorders them.
//
// Two variants match the two kinds of part drawings:
//
//   - [Breadboard] orders the connector pins of a group by position. The
//     seed is the pin named [BreadboardSentinel].
//   - [Schematic] follows an explicit link stored on each element, either a
//     chain attribute or an Inkscape label of the form "next:<id>". The seed
//     is the element named [SchematicSentinel].
//
// Seed matching is a [SeedMatcher] so new variants can bring their own
// sentinel conventions without touching the engine.
package resolve
