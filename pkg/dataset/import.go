package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/treemap/pkg/errors"
)

// ReadJSON decodes a dataset document from r.
//
// Trailing data after the top-level object is rejected. ReadJSON does not
// validate the leaf/internal shape of the nodes. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*RawNode, error) {
	dec := json.NewDecoder(r)
	var root RawNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode: unexpected data after top-level object")
	}
	return &root, nil
}

// ImportJSON reads a dataset file at path.
// Open and decode failures are LOAD_ERROR.
func ImportJSON(path string) (*RawNode, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "import dataset")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "open %s", path)
	}
	defer f.Close()

	root, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "%s", path)
	}
	return root, nil
}

// Loader resolves a source string to a dataset document.
type Loader struct {
	Client *Client
	Stdin  io.Reader
}

// NewLoader returns a Loader using client for URLs and os.Stdin for "-".
func NewLoader(client *Client) *Loader {
	if client == nil {
		client = NewClient(nil)
	}
	return &Loader{Client: client, Stdin: os.Stdin}
}

// Load reads the dataset named by source: an http(s) URL, "-" for stdin,
// or a file path. An empty source means [DefaultURL].
func (l *Loader) Load(ctx context.Context, source string) (*RawNode, error) {
	switch {
	case source == "":
		return l.Client.Fetch(ctx, DefaultURL)
	case IsURL(source):
		return l.Client.Fetch(ctx, source)
	case source == "-":
		root, err := ReadJSON(l.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeLoad, err, "stdin")
		}
		return root, nil
	default:
		return ImportJSON(source)
	}
}

// Load reads source with a default [Loader].
func Load(ctx context.Context, source string) (*RawNode, error) {
	return NewLoader(nil).Load(ctx, source)
}

// IsURL reports whether source names an http or https resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
