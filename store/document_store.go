package store

import (
	"sync"

	"docqa-be/types"
)

// DocumentStore keeps processed documents in memory for the lifetime of the
// process. There is no eviction and no delete path; entries are immutable
// once registered.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*types.ProcessedDocument
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*types.ProcessedDocument),
	}
}

// Put registers a document under its id. Ids are freshly generated by the
// ingestion pipeline, so a collision indicates a bug; Put refuses to
// overwrite and returns ErrDocumentExists instead.
func (s *DocumentStore) Put(doc *types.ProcessedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; ok {
		return types.ErrDocumentExists
	}
	s.docs[doc.ID] = doc
	return nil
}

// Get returns the document registered under id, or ErrDocumentNotFound.
func (s *DocumentStore) Get(id string) (*types.ProcessedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	return doc, nil
}

// Exists reports whether a document is registered under id.
func (s *DocumentStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok
}
