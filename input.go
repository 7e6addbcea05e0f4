package prettyprint

import (
	"io"
	"os"
)

// InputKind identifies where an Input reads its content from.
type InputKind uint8

const (
	// InputOrdinaryFile reads from a path on disk.
	InputOrdinaryFile InputKind = iota
	// InputStdin reads from standard input.
	InputStdin
	// InputReader reads from a caller-supplied io.Reader.
	InputReader
)

// StdinName is the display name of standard input when no override is set.
const StdinName = "STDIN"

// Input is one unit of text to print. Constructing an Input never performs
// I/O; the content is opened by the render engine.
type Input struct {
	kind   InputKind
	path   string
	reader io.Reader
	name   string
	named  bool
}

// OrdinaryFileInput returns an Input for the file at path.
func OrdinaryFileInput(path string) Input {
	return Input{kind: InputOrdinaryFile, path: path}
}

// StdinInput returns an Input for standard input.
func StdinInput() Input {
	return Input{kind: InputStdin}
}

// ReaderInput returns an Input that takes ownership of r. If r is also an
// io.Closer it is closed once the engine has read it.
func ReaderInput(r io.Reader) Input {
	return Input{kind: InputReader, reader: r}
}

// WithName returns a copy of in with its display name overridden.
func (in Input) WithName(name string) Input {
	in.name = name
	in.named = true
	return in
}

// Kind reports the input kind.
func (in Input) Kind() InputKind { return in.kind }

// Path returns the file path of an ordinary file input, or "".
func (in Input) Path() string { return in.path }

// Name resolves the display name. An explicit override wins; otherwise
// ordinary files use their path and stdin uses StdinName. Readers have no
// default name.
func (in Input) Name() (string, bool) {
	if in.named {
		return in.name, true
	}
	switch in.kind {
	case InputOrdinaryFile:
		return in.path, true
	case InputStdin:
		return StdinName, true
	}
	return "", false
}

// label is the name used in headers and diagnostics.
func (in Input) label() string {
	if name, ok := in.Name(); ok {
		return name
	}
	return "READER"
}

// Open opens the input for reading. stdin is used for InputStdin; a nil stdin
// falls back to os.Stdin. The caller must close the returned reader.
func (in Input) Open(stdin io.Reader) (io.ReadCloser, error) {
	switch in.kind {
	case InputOrdinaryFile:
		return os.Open(in.path)
	case InputStdin:
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), nil
	}
	if in.reader == nil {
		return io.NopCloser(eofReader{}), nil
	}
	if rc, ok := in.reader.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(in.reader), nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
