package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
	"github.com/studio-matra/portfolio-backend/internal/logging"
	"github.com/studio-matra/portfolio-backend/internal/media"
)

const (
	placeholderName = "meta/display-order"
	contextKey      = "order"
	// 1x1 transparent gif; the placeholder asset only exists to carry the
	// order document in its context metadata.
	placeholderData = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"
)

// Store persists the display-order document as context metadata on a
// dedicated placeholder asset in the media host.
type Store struct {
	client *media.Client
}

func NewStore(client *media.Client) *Store {
	return &Store{client: client}
}

func (s *Store) publicID() string {
	base := s.client.BaseFolder()
	if base == "" {
		return placeholderName
	}
	return base + "/" + placeholderName
}

// Get returns the persisted order document. Reads never fail the caller:
// a missing asset, an unconfigured host or any fetch error all degrade to
// the default empty document (non-404 failures are logged).
func (s *Store) Get(ctx context.Context) catalog.OrderDocument {
	if !s.client.Enabled() {
		return catalog.DefaultOrder()
	}

	res, err := s.client.GetResource(ctx, s.publicID())
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			logging.New(ctx).Warnf("order_get", "falling back to default order: %v", err)
		}
		return catalog.DefaultOrder()
	}

	raw, ok := res.Context.Custom[contextKey]
	if !ok || raw == "" {
		return catalog.DefaultOrder()
	}

	var doc catalog.OrderDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logging.New(ctx).Warnf("order_get", "malformed order document, using default: %v", err)
		return catalog.DefaultOrder()
	}
	if doc.Locations == nil {
		doc.Locations = []string{}
	}
	if doc.Projects == nil {
		doc.Projects = map[string][]string{}
	}
	return doc
}

// SaveLocationOrder replaces the location ordering and republishes the
// whole document. Unlike reads, write failures propagate.
func (s *Store) SaveLocationOrder(ctx context.Context, ids []string) ([]string, error) {
	doc := s.Get(ctx)
	doc.Locations = append([]string{}, ids...)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Locations, nil
}

// SaveProjectOrder replaces one location's project ordering and
// republishes the whole document. There is no partial update of a single
// key; a concurrent save of the other field can be clobbered, which is a
// known limitation.
func (s *Store) SaveProjectOrder(ctx context.Context, locationID string, ids []string) ([]string, error) {
	doc := s.Get(ctx)
	doc.Projects[locationID] = append([]string{}, ids...)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Projects[locationID], nil
}

func (s *Store) save(ctx context.Context, doc catalog.OrderDocument) error {
	if !s.client.Enabled() {
		return fmt.Errorf("media host not configured, cannot persist order")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal order document: %w", err)
	}

	_, err = s.client.Upload(ctx, media.UploadParams{
		DataURI:   placeholderData,
		PublicID:  s.publicID(),
		Context:   map[string]string{contextKey: string(raw)},
		Overwrite: true,
	})
	if err != nil {
		return fmt.Errorf("persist order document: %w", err)
	}
	return nil
}
