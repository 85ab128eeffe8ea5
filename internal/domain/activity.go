package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxActivityDepth is the fixed bound on the activity tree: levels 0..2,
// so a subtree resolution expands at most 3 levels including the root.
const MaxActivityDepth = 3

// Activity is a node of the self-referential category tree. Level equals the
// parent's level plus one; roots have level 0 and no parent. (name, parent)
// is unique. An activity with children or organization links cannot be
// deleted.
type Activity struct {
	ID        uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the activity is a top-level category.
func (a Activity) IsRoot() bool { return a.ParentID == nil }
