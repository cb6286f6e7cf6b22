package explorer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yumyai/panres/pkg/model"
)

// LocalSource answers Source calls straight from an imported store, so the
// CLI can browse without a running server.
type LocalSource struct {
	DB *sql.DB
}

func (s *LocalSource) Hierarchy(ctx context.Context) (*model.HierarchyResponse, error) {
	return model.GetHierarchy(ctx, s.DB)
}

func (s *LocalSource) Children(ctx context.Context, classID string) (*model.ChildrenResponse, error) {
	resp, err := model.GetChildren(ctx, s.DB, classID)
	return resp, localErr(err)
}

func (s *LocalSource) Details(ctx context.Context, id string) (*model.DetailsResponse, error) {
	resp, err := model.GetDetails(ctx, s.DB, id)
	return resp, localErr(err)
}

func localErr(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
