// Package pkg provides the core libraries for pinwalk connector renumbering.
//
// # Overview
//
// Pinwalk edits Fritzing-style part drawings: SVG files whose connector
// elements are identified by ids such as connector0pin. Starting from a seed
// element it walks the connectors in a well-defined order and renames them
// so their numbers are contiguous and follow the walk. The pkg directory is
// organized into three areas:
//
//  1. Domain logic ([svg], [connector], [resolve], [traverse], [renumber])
//  2. Support ([config], [errors], [io], [observability], [render/nodelink])
//  3. Orchestration ([pipeline])
//
// # Architecture
//
// The data flow of one run:
//
//	part.svg
//	     ↓
//	[svg] package (parse into an ordered tree)
//	     ↓
//	[resolve] + [traverse] packages (seed, walk, mapping)
//	     ↓
//	[renumber] package (rename connectors and references)
//	     ↓
//	[svg] serializer → [io] (replace with backup, or print)
//
// # Quick Start
//
// Number the pins of a breadboard view left to right:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pinwalk/pkg/resolve"
//	    "github.com/matzehuels/pinwalk/pkg/renumber"
//	    "github.com/matzehuels/pinwalk/pkg/svg"
//	    "github.com/matzehuels/pinwalk/pkg/traverse"
//	)
//
//	doc, _ := svg.Load("part.svg")
//	bb, _ := resolve.NewBreadboard(resolve.BreadboardOptions{})
//	res, _ := traverse.New(bb, traverse.Options{}).Run(ctx, doc)
//	rep, _ := renumber.Apply(ctx, doc, res.Mapping, renumber.DefaultOptions())
//	out, _ := svg.Serialize(doc, svg.DefaultWriteOptions())
//
// # Main Packages
//
// [svg] - Ordered element tree that keeps attribute order, namespace
// prefixes and source lines, with anchor geometry and a pretty serializer.
//
// [connector] - Connector naming (connectorNpin, connectorNterminal,
// connectorNleg), the walk mapping, and pin/terminal/leg association.
//
// [resolve] - The two walk variants: breadboard (geometric order within a
// group) and schematic (explicit next links).
//
// [traverse] - The walk state machine producing the mapping.
//
// [renumber] - Two-phase rewrite of ids and every reference to them.
//
// [pipeline] - Load → walk → apply → write for one file, used by the CLI.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/renumber/...           # Specific package
//	go test -run Example ./pkg/svg       # Examples only
//
// [svg]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/svg
// [connector]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/connector
// [resolve]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/resolve
// [traverse]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/traverse
// [renumber]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/renumber
// [config]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/observability
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pinwalk/pkg/pipeline
package pkg
