// Package prettyprint collects inputs and presentation settings and hands them
// to a render engine for one pass of syntax-highlighted terminal output.
//
// The PrettyPrinter is a mutable builder: inputs are registered in order,
// options are overwritten in place, and Print resolves the deferred defaults
// (terminal width, highlighted lines, style components) into an immutable
// Config before running the engine.
//
// Core properties:
//   - No I/O at registration; inputs are opened by the engine
//   - Style components are always emitted in canonical order
//   - Highlighted line ranges are merged into one set at Print time
//   - Pending inputs are consumed by Print
//
// Example:
//
//	ok, err := prettyprint.New().
//		InputFile("main.go").
//		InputFromBytesWithName([]byte("x = 1\n"), "demo.py").
//		LineNumbers(true).
//		Grid(true).
//		HighlightRange(3, 5).
//		Theme("dracula").
//		Print()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !ok {
//		os.Exit(1)
//	}
//
// The default engine is a Controller backed by chroma lexers, styles and
// terminal formatters. Custom engines can be supplied with WithEngine.
package prettyprint
