package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"blog-dashboard/internal/storage"
)

// Record is the JSON document written for every deleted entity.
type Record struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
	Data      any       `json:"record"`
}

// Manager uploads deleted records to object storage in the background.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
	Archive(kind, id string, record any)
}

type Config struct {
	Bucket        string
	KeyPrefix     string
	MaxConcurrent int
	UploadTimeout time.Duration
	Logger        *logrus.Logger
}

type manager struct {
	cfg     Config
	storage storage.Service

	sem    chan struct{}
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	now    func() time.Time
}

func NewManager(cfg Config, store storage.Service) Manager {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &manager{
		cfg:     cfg,
		storage: store,
		sem:     make(chan struct{}, cfg.MaxConcurrent),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("archive bucket is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Uploads outlive the request that triggered them; only Shutdown cancels them.
	m.ctx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.cfg.Logger.Infof("archive manager started, bucket: %s", m.cfg.Bucket)
	return nil
}

// Shutdown stops accepting records and waits for queued uploads to finish.
func (m *manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()
	if m.cancel != nil {
		m.cancel()
	}
	m.cfg.Logger.Info("archive manager stopped")
}

func (m *manager) Archive(kind, id string, record any) {
	rec := Record{Kind: kind, ID: id, DeletedAt: m.now(), Data: record}
	// Encode now so later mutation of record cannot leak into the archive.
	body, err := json.Marshal(rec)
	if err != nil {
		m.cfg.Logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id}).Warn("encode archive record")
		return
	}

	m.mu.Lock()
	if m.closed || m.ctx == nil {
		m.mu.Unlock()
		m.cfg.Logger.WithFields(logrus.Fields{"kind": kind, "id": id}).Warn("archive manager not running, record dropped")
		return
	}
	ctx := m.ctx
	m.wg.Add(1)
	m.mu.Unlock()

	key := m.objectKey(rec)
	go func() {
		defer m.wg.Done()
		select {
		case <-ctx.Done():
			return
		case m.sem <- struct{}{}:
			defer func() { <-m.sem }()
			m.upload(ctx, key, body)
		}
	}()
}

func (m *manager) upload(ctx context.Context, key string, body []byte) {
	uploadCtx, cancel := context.WithTimeout(ctx, m.cfg.UploadTimeout)
	defer cancel()

	location, err := m.storage.PutObject(uploadCtx, m.cfg.Bucket, key, bytes.NewReader(body), "application/json")
	if err != nil {
		m.cfg.Logger.WithError(err).WithField("key", key).Warn("archive upload failed")
		return
	}
	m.cfg.Logger.WithField("location", location).Debug("archived record")
}

// objectKey returns <prefix>/<kind>/<id>-<unixMillis>.json.
func (m *manager) objectKey(rec Record) string {
	name := fmt.Sprintf("%s-%d.json", rec.ID, rec.DeletedAt.UnixMilli())
	if m.cfg.KeyPrefix == "" {
		return path.Join(rec.Kind, name)
	}
	return path.Join(m.cfg.KeyPrefix, rec.Kind, name)
}
