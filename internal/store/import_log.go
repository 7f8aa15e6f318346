package store

import (
	"database/sql"
	"errors"
	"fmt"

	"moonsales/internal/model"
)

// 导入状态
const (
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// ErrImportLogNotFound 日志不存在
var ErrImportLogNotFound = errors.New("import log not found")

// CreateImportLog 创建导入日志，返回 import_log_id
func (s *Store) CreateImportLog(filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_size, file_hash, status)
		VALUES (?, ?, ?, ?)
	`, filename, fileSize, fileHash, StatusProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// CompleteImportLog 标记导入成功
func (s *Store) CompleteImportLog(id int64, productCount, weekCount int) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			status = ?,
			product_count = ?,
			week_count = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, StatusSuccess, productCount, weekCount, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// FailImportLog 标记导入失败
func (s *Store) FailImportLog(id int64, errorKind, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			status = ?,
			error_kind = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, StatusFailed, errorKind, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

const importLogColumns = `id, filename, file_size, file_hash, status, error_kind, error_message,
	product_count, week_count, created_at, completed_at`

// GetImportLog 查询单条日志
func (s *Store) GetImportLog(id int64) (*model.ImportLog, error) {
	row := s.db.QueryRow(`SELECT `+importLogColumns+` FROM import_logs WHERE id = ?`, id)
	it, err := scanImportLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImportLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query import log failed: %w", err)
	}
	return it, nil
}

// ListImportLogs 最近的导入日志（按 id 倒序）
func (s *Store) ListImportLogs(limit int) ([]*model.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+importLogColumns+` FROM import_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import logs failed: %w", err)
	}
	defer rows.Close()

	out := []*model.ImportLog{}
	for rows.Next() {
		it, err := scanImportLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import log failed: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import logs failed: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImportLog(r rowScanner) (*model.ImportLog, error) {
	var it model.ImportLog
	var completed sql.NullTime
	if err := r.Scan(
		&it.ID, &it.Filename, &it.FileSize, &it.FileHash, &it.Status, &it.ErrorKind, &it.ErrorMessage,
		&it.ProductCount, &it.WeekCount, &it.CreatedAt, &completed,
	); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		it.CompletedAt = &t
	}
	return &it, nil
}
