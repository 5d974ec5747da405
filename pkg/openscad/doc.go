// Package openscad invokes the OpenSCAD renderer and classifies its outcome.
//
// OpenSCAD does not always report failure through its exit status: with
// some releases, --hardwarnings is honoured for a subset of warnings only,
// and the remaining ones are printed while the process still exits 0. An
// [Invoker] therefore asks the renderer to write its console log into a
// capture file and scans that file after a successful exit. Any line
// starting with "WARNING:" fails the run, except [BenignWarning].
//
// # Outcomes
//
// A [Result] carries one of three statuses:
//
//   - [StatusSuccess]: exit 0 and no disqualifying warning
//   - [StatusExitFailure]: non-zero exit; the capture file is not read
//   - [StatusWarningFailure]: exit 0 with a disqualifying warning, reported
//     by [Result.Code] as [WarningExitCode]
//
// A failing render is data, not an error. Invoke returns an error only when
// its own assumptions break: the renderer could not be started, or the
// capture file is missing after the renderer claimed success.
//
// # Usage
//
//	inv := openscad.NewInvoker(process.NewRunner(), logger)
//	res, err := inv.Invoke(ctx, openscad.Request{
//	    Script:  "part.scad",
//	    Params:  []string{"--imgsize", "800,600"},
//	    Capture: true,
//	})
//	if err != nil {
//	    return err // internal failure
//	}
//	if res.Failed() {
//	    os.Exit(res.Code())
//	}
//
// The pure pieces ([Renderer.Command], [IsDisqualifying], [Classify]) can be
// used without spawning anything.
//
// The package also resolves the use/include dependencies of a script
// ([ResolveDeps]) and renders them as a Graphviz diagram.
package openscad
