package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, flock *Flock) error
	FindByID(ctx context.Context, id snowflake.ID) (*Flock, error)
	FindByBatchNo(ctx context.Context, batchNo string) (*Flock, error)
	FindActiveByOwner(ctx context.Context, ownerID snowflake.ID) (*Flock, error)
	List(ctx context.Context, ownerID snowflake.ID) ([]*Flock, error)
	Update(ctx context.Context, flock *Flock) error
}
