package process

import "errors"

// errNoTitle marks a posting that cannot be processed because no title
// survived cleaning, leaving nothing to build a deterministic identity from.
var errNoTitle = errors.New("posting has no title")
