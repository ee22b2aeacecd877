// errors

package branchless

import "errors"

var (
	ErrNilRepo      = errors.New("nil repo")
	ErrNoMainBranch = errors.New("main branch not found")
	ErrBrokenParent = errors.New("node parent missing from graph")
	ErrBrokenChild  = errors.New("node child missing from graph")
	ErrNoHead       = errors.New("cannot resolve HEAD")
	ErrNilReplayer  = errors.New("nil event replayer")
	ErrNilMergeBase = errors.New("nil merge-base db")
)
