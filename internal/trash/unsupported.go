//go:build !unix && !(windows && (amd64 || arm64))

package trash

// New returns a Trasher that always fails with ErrUnsupported.
func New() Trasher {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Trash(string) error { return ErrUnsupported }

func isEXDEV(error) bool { return false }
