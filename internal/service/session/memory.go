package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"moonsales/internal/model"
)

// ErrDatasetNotFound 数据集不存在或已过期
var ErrDatasetNotFound = errors.New("dataset not found")

// Dataset 一次上传得到的规范化数据
type Dataset struct {
	ID         string                    `json:"id"`
	Filename   string                    `json:"filename"`
	UploadedAt time.Time                 `json:"uploadedAt"`
	Workbook   *model.NormalizedWorkbook `json:"-"`
	ImportLog  int64                     `json:"importLogId,omitempty"`

	lastAccess time.Time
}

// Store 内存数据集存储，按 ID 隔离各会话，闲置超时自动释放
type Store struct {
	mu    sync.Mutex
	items map[string]*Dataset
	ttl   time.Duration
	now   func() time.Time
}

// NewStore 创建存储
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]*Dataset),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put 保存数据集并返回新 ID
func (s *Store) Put(filename string, wb *model.NormalizedWorkbook) *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	ds := &Dataset{
		ID:         uuid.New().String(),
		Filename:   filename,
		UploadedAt: now,
		Workbook:   wb,
		lastAccess: now,
	}
	s.items[ds.ID] = ds
	return ds
}

// Replace 新文件替换旧数据集：旧的立即释放
func (s *Store) Replace(oldID, filename string, wb *model.NormalizedWorkbook) *Dataset {
	if oldID != "" {
		s.Delete(oldID)
	}
	return s.Put(filename, wb)
}

// Get 获取数据集并刷新闲置时间
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	ds, ok := s.items[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	ds.lastAccess = now
	return ds, nil
}

// SetImportLog 关联审计日志
func (s *Store) SetImportLog(id string, logID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.items[id]; ok {
		ds.ImportLog = logID
	}
}

// Delete 释放数据集
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// Count 当前数据集数量
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(s.now())
	return len(s.items)
}

// Clear 清空
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*Dataset)
}

func (s *Store) purgeExpiredLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, v := range s.items {
		if now.Sub(v.lastAccess) > s.ttl {
			delete(s.items, k)
		}
	}
}
