package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/cafedesk/config"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager creates an empty manager whose default disk is defaultDisk.
func NewManager(defaultDisk string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: defaultDisk}
}

// Connect builds a manager from config. The local disk is always present;
// the s3 disk only when S3_BUCKET is set.
func Connect(ctx context.Context) *Manager {
	m := NewManager(config.StorageDefault())
	m.Register("local", NewLocal(config.StorageLocalRoot()))

	if config.StorageS3Bucket() != "" {
		d, err := NewS3(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}
	return m
}

// Register adds or replaces a named disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Use returns the named disk.
func (m *Manager) Use(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured (have %v)", name, m.Names())
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() (Disk, error) { return m.Use(m.defaultDisk) }

// Names lists the configured disks.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.disks))
	for n := range m.disks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
