package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatPercent 格式化百分比（输入已是百分数，如 12.5 表示 12.5%）
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatQuantity 格式化数量（千分位，去掉无意义的小数）
func FormatQuantity(value float64) string {
	return humanize.Commaf(value)
}
