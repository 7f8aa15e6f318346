package model

import "time"

// SheetMeta 上传工作表元信息（仅用于追溯，不含销售数据）
type SheetMeta struct {
	ID           int64     `json:"id"`
	ImportLogID  int64     `json:"importLogId"`
	SheetName    string    `json:"sheetName"`
	SheetKind    string    `json:"sheetKind"`
	TotalRows    int       `json:"totalRows"`
	TotalColumns int       `json:"totalColumns"`
	WeekColumns  int       `json:"weekColumns"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImportLog 上传日志
type ImportLog struct {
	ID           int64      `json:"id"`
	Filename     string     `json:"filename"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	Status       string     `json:"status"`
	ErrorKind    string     `json:"errorKind"`
	ErrorMessage string     `json:"errorMessage"`
	ProductCount int        `json:"productCount"`
	WeekCount    int        `json:"weekCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}
