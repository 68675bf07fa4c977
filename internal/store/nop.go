package store

import "time"

// NopStore is a no-op store used in dry-run mode. It never records
// fingerprints, so every job appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(fingerprint string) (bool, error) { return false, nil }
func (s *NopStore) MarkSeen(fingerprint string) error        { return nil }
func (s *NopStore) LoadAll() ([]string, error)               { return nil, nil }
func (s *NopStore) IsEmpty() (bool, error)                   { return true, nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error    { return nil }
