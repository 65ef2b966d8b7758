package storage

import "github.com/google/uuid"

type TaskListFilter struct {
	Status       string
	ProjectID    *uuid.UUID
	AssignedToID *uuid.UUID
	Limit        int
	Offset       int
}

type ProjectListFilter struct {
	Limit  int
	Offset int
}

type MemberListFilter struct {
	Limit  int
	Offset int
}

// SnapshotRange selects snapshots by calendar day key (YYYY-MM-DD), both ends inclusive.
type SnapshotRange struct {
	FromDay string
	ToDay   string
}
