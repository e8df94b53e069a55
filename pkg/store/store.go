// Package store persists topology documents in one of two modes: to disk
// as the JSON {nodes, edges} document, or to Redis as a hash keyed
// "TOPOLOGY|<name>" with one field per document key — the server-side
// analogues of a downloaded file and of browser local storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/netlab-project/netlab/pkg/topoconv"
)

const tableName = "TOPOLOGY"

// Store is satisfied by both backends.
type Store interface {
	Save(ctx context.Context, name string, doc *topoconv.Document) error
	Load(ctx context.Context, name string) (*topoconv.Document, error)
	List(ctx context.Context) ([]string, error)
}

// FileStore persists each topology as "<dir>/<name>.json".
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir. dir is created on first
// Save if it does not already exist.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

// Save writes doc to "<dir>/<name>.json".
func (s *FileStore) Save(_ context.Context, name string, doc *topoconv.Document) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling topology %q: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing topology %q: %w", name, err)
	}
	return nil
}

// Load reads and parses "<dir>/<name>.json".
func (s *FileStore) Load(_ context.Context, name string) (*topoconv.Document, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading topology %q: %w", name, err)
	}
	return topoconv.Parse(data)
}

// List returns the names of every topology file in the store directory.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// RedisStore persists each topology as a Redis hash "TOPOLOGY|<name>"
// with "nodes" and "edges" fields holding their JSON encodings.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore talking to the given address (host:port).
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func redisKey(name string) string {
	return fmt.Sprintf("%s|%s", tableName, name)
}

// Save writes doc's nodes and edges as separate hash fields under
// "TOPOLOGY|<name>".
func (s *RedisStore) Save(ctx context.Context, name string, doc *topoconv.Document) error {
	nodes, err := json.Marshal(doc.Nodes)
	if err != nil {
		return fmt.Errorf("marshaling nodes for %q: %w", name, err)
	}
	edges, err := json.Marshal(doc.Edges)
	if err != nil {
		return fmt.Errorf("marshaling edges for %q: %w", name, err)
	}
	return s.client.HSet(ctx, redisKey(name), "nodes", string(nodes), "edges", string(edges)).Err()
}

// Load reads the "TOPOLOGY|<name>" hash and reassembles a Document.
func (s *RedisStore) Load(ctx context.Context, name string) (*topoconv.Document, error) {
	vals, err := s.client.HGetAll(ctx, redisKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading topology %q: %w", name, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("topology %q not found", name)
	}

	var doc topoconv.Document
	if nodes, ok := vals["nodes"]; ok {
		if err := json.Unmarshal([]byte(nodes), &doc.Nodes); err != nil {
			return nil, fmt.Errorf("unmarshaling nodes for %q: %w", name, err)
		}
	}
	if edges, ok := vals["edges"]; ok {
		if err := json.Unmarshal([]byte(edges), &doc.Edges); err != nil {
			return nil, fmt.Errorf("unmarshaling edges for %q: %w", name, err)
		}
	}
	return &doc, nil
}

// List returns the names of every topology hash in the store, derived by
// stripping the "TOPOLOGY|" prefix from each matching key.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, tableName+"|*").Result()
	if err != nil {
		return nil, fmt.Errorf("listing topologies: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, tableName+"|"))
	}
	return names, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
