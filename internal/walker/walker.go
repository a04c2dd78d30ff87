package walker

import (
	"context"
	"errors"
	"fmt"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/document"
	"notion-intel/internal/notion"
)

var (
	// ErrInvalidRoot is returned when the root id is empty.
	ErrInvalidRoot = errors.New("walker: root id is required")
	// ErrInvalidDepth is returned when max depth is below 1.
	ErrInvalidDepth = errors.New("walker: max depth must be at least 1")
	// ErrMissingCursor is returned when a listing reports more results without a cursor.
	ErrMissingCursor = errors.New("walker: has_more set without next_cursor")
)

// ChildLister lists one page of a block's children.
type ChildLister interface {
	GetChildren(ctx context.Context, blockID, cursor string) (*notion.ChildrenPage, error)
}

// Error reports a failed child listing.
type Error struct {
	BlockID string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("walk children of %s: %v", e.BlockID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Walker materializes a remote block tree.
type Walker struct {
	lister ChildLister
}

// New creates a Walker backed by lister.
func New(lister ChildLister) *Walker {
	return &Walker{lister: lister}
}

type frame struct {
	block *document.Block
	depth int
}

// Walk returns the children of rootID as a tree, descending into a block only
// when it has children and its depth is below maxDepth. The root's children are at
// depth 0, so maxDepth 1 still fetches their children.
// On any error, including cancellation, no partial tree is returned.
func (w *Walker) Walk(ctx context.Context, rootID string, maxDepth int) ([]*document.Block, error) {
	if rootID == "" {
		return nil, ErrInvalidRoot
	}
	if maxDepth < 1 {
		return nil, ErrInvalidDepth
	}

	logger := contextutil.LoggerFromContext(ctx)

	top, err := w.listAll(ctx, rootID)
	if err != nil {
		return nil, err
	}

	stack := make([]frame, 0, len(top))
	stack = pushReversed(stack, top, 0)

	fetches := 1
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.block.HasChildren || f.depth >= maxDepth {
			continue
		}

		children, err := w.listAll(ctx, f.block.ID)
		if err != nil {
			return nil, err
		}
		fetches++
		f.block.Children = children
		stack = pushReversed(stack, children, f.depth+1)
	}

	logger.DebugContext(ctx, "walked block tree",
		"root_id", rootID,
		"blocks", document.CountBlocks(top),
		"fetches", fetches,
	)
	return top, nil
}

// listAll pages through every child of parentID.
func (w *Walker) listAll(ctx context.Context, parentID string) ([]*document.Block, error) {
	var blocks []*document.Block
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, &Error{BlockID: parentID, Err: err}
		}

		page, err := w.lister.GetChildren(ctx, parentID, cursor)
		if err != nil {
			return nil, &Error{BlockID: parentID, Err: err}
		}

		for _, raw := range page.Results {
			blocks = append(blocks, &document.Block{
				ID:          raw.ID,
				Kind:        document.ParseKind(raw.Type),
				Type:        raw.Type,
				Content:     Extract(raw),
				HasChildren: raw.HasChildren,
				ParentID:    parentID,
			})
		}

		if !page.HasMore {
			return blocks, nil
		}
		cursor = page.Cursor()
		if cursor == "" {
			return nil, &Error{BlockID: parentID, Err: ErrMissingCursor}
		}
	}
}

func pushReversed(stack []frame, blocks []*document.Block, depth int) []frame {
	for i := len(blocks) - 1; i >= 0; i-- {
		stack = append(stack, frame{block: blocks[i], depth: depth})
	}
	return stack
}
