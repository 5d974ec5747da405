// Package pkg provides the libraries behind the ofl build helpers for the
// OpenSCAD Foundation Library.
//
// # Overview
//
// The library build drives the OpenSCAD renderer from make. Every run must
// fail on warnings, test scripts carry several parameter sets, documentation
// pictures are regenerated and compared against the committed ones, and
// releases are tagged from the latest version. The pkg directory is
// organized around these jobs:
//
//  1. [openscad] - Renderer invocation, warning classification, dependency graphs
//  2. [suite] - Test layout and job planning for tests and pictures
//  3. [imagediff] - Structural similarity between two pictures
//  4. [semver] and [vcs] - Release versions and git access
//  5. Support - [config], [cache], [errors], [process], [observability],
//     [watcher], [scaffold], [buildinfo]
//
// # Architecture
//
// A test run flows through:
//
//	PATH.scad / PATH.conf / PATH.json
//	         ↓
//	    [suite] package (one job per TEST_CASE)
//	         ↓
//	    [openscad] package (argv, run, scan capture)
//	         ↓
//	    Result (success, exit failure or warning failure)
//
// # Quick Start
//
// Run a script with hard warnings and inspect the outcome:
//
//	import (
//	    "context"
//	    "github.com/openscad-ofl/ofltools/pkg/openscad"
//	    "github.com/openscad-ofl/ofltools/pkg/process"
//	)
//
//	iv := openscad.NewInvoker(process.NewRunner(), nil)
//	res, err := iv.Invoke(context.Background(), openscad.Request{
//	    Script:  "tests/foundation/hole.scad",
//	    Capture: true,
//	})
//	if err != nil {
//	    return err // renderer missing or capture unreadable
//	}
//	if res.Failed() {
//	    os.Exit(res.Code())
//	}
//
// # Error Handling
//
// Packages return [errors.Error] values carrying a machine-readable code:
//
//	if errors.Is(err, errors.ErrCodeDirtyWorktree) {
//	    // commit or stash first
//	}
//
// A renderer that runs and fails is not an error: [openscad.Invoker.Invoke]
// returns a Result whose Status says how it failed.
//
// # Observability
//
// [observability] exposes hooks for renderer runs and cache access. The
// CLI registers hooks that log at debug level.
//
// [openscad]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/openscad
// [suite]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/suite
// [imagediff]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/imagediff
// [semver]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/semver
// [vcs]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/vcs
// [config]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/config
// [cache]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/cache
// [errors]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/errors#Error
// [process]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/process
// [observability]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/observability
// [watcher]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/watcher
// [scaffold]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/scaffold
// [buildinfo]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/buildinfo
// [openscad.Invoker.Invoke]: https://pkg.go.dev/github.com/openscad-ofl/ofltools/pkg/openscad#Invoker.Invoke
package pkg
