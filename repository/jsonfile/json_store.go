package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"campus-chat/entity"
	"campus-chat/repository"
	"campus-chat/repository/memory"
)

// Store serves reads from memory and rewrites the whole JSON file after
// every mutation. Mutations are serialized by mu.
type Store struct {
	*memory.Store
	path string
	mu   sync.Mutex
}

var _ repository.Store = (*Store)(nil)

// Open loads path when it exists, otherwise starts empty.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Store{Store: memory.NewStore(), path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	var snapshot memory.Snapshot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}
	return &Store{Store: memory.NewStoreFromSnapshot(snapshot), path: path}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(s.Store.Snapshot())
}

func (s *Store) writeFile(snapshot memory.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// persist applies mutate and rewrites the file. When the file cannot be
// written the in-memory state is rolled back.
func (s *Store) persist(mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.Store.Snapshot()
	if err := mutate(); err != nil {
		return err
	}
	if err := s.writeFile(s.Store.Snapshot()); err != nil {
		s.Store.Restore(before)
		return err
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	return s.persist(func() error { return s.Store.CreateUser(ctx, user) })
}

func (s *Store) UpdateUser(ctx context.Context, user *entity.User) error {
	return s.persist(func() error { return s.Store.UpdateUser(ctx, user) })
}

func (s *Store) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	return s.persist(func() error { return s.Store.CreateAdmin(ctx, admin) })
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	return s.persist(func() error { return s.Store.DeleteAdmin(ctx, id) })
}

func (s *Store) CreateMessage(ctx context.Context, message *entity.Message) error {
	return s.persist(func() error { return s.Store.CreateMessage(ctx, message) })
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return s.persist(func() error { return s.Store.DeleteMessage(ctx, id) })
}

func (s *Store) CreateReport(ctx context.Context, report *entity.Report) error {
	return s.persist(func() error { return s.Store.CreateReport(ctx, report) })
}

func (s *Store) SaveSettings(ctx context.Context, settings *entity.Settings) error {
	return s.persist(func() error { return s.Store.SaveSettings(ctx, settings) })
}

func (s *Store) ScheduleDeletion(ctx context.Context, deletion *entity.ScheduledDeletion) error {
	return s.persist(func() error { return s.Store.ScheduleDeletion(ctx, deletion) })
}

func (s *Store) CancelDeletion(ctx context.Context, messageID string) error {
	return s.persist(func() error { return s.Store.CancelDeletion(ctx, messageID) })
}
