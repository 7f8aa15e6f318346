package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"moonsales/internal/config"
	"moonsales/internal/logger"
	"moonsales/internal/report"
	"moonsales/internal/service/excel"
	"moonsales/internal/util"
)

func main() {
	file := flag.String("file", "", "輸入的 Excel 檔案 (.xlsx)")
	product := flag.String("product", "", "產品代號 (留空則匯出全部產品)")
	out := flag.String("out", "", "輸出報表路徑 (預設 <輸入檔名>-分析.xlsx)")
	year := flag.Int("year", 0, "週別解析所用的參考年份 (覆蓋設定檔)")
	configPath := flag.String("config", "", "設定檔路徑 (預設為執行檔同目錄的 config.toml)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: salesreport -file in.xlsx [-product P001] [-out report.xlsx] [-year 2024]")
		os.Exit(2)
	}

	var (
		cfg *config.AppConfig
		err error
	)
	if *configPath != "" {
		cfg, _, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *year > 0 {
		cfg.Analysis.ReferenceYear = *year
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	in, err := os.Open(*file)
	if err != nil {
		logger.Fatal("open %s: %v", *file, err)
	}
	defer in.Close()

	res, err := report.Generate(in, report.Options{
		Schema: cfg.Schema(),
		SheetNames: excel.SheetNames{
			Quantity:   cfg.Workbook.QuantitySheet,
			Cumulative: cfg.Workbook.CumulativeSheet,
			Growth:     cfg.Workbook.GrowthSheet,
		},
		FontFamily: cfg.Excel.FontFamily,
		ProductID:  *product,
		Progress:   os.Stderr,
	})
	if err != nil {
		logger.Fatal("analyze %s: %v", *file, err)
	}
	defer res.File.Close()

	for _, t := range res.Tables {
		if len(t.Rows) == 0 {
			continue
		}
		last := t.Rows[len(t.Rows)-1]
		fmt.Printf("%s %s | %s | 單週 %s | 累積 %s | 成長 %s\n",
			t.ProductID, t.ProductName, last.Week,
			util.FormatQuantity(last.WeeklyQuantity),
			util.FormatQuantity(last.CumulativeQuantity),
			util.FormatPercent(last.GrowthRatePercent))
	}
	for _, w := range res.Warnings {
		logger.Warn("%s", w)
	}

	target := *out
	if target == "" {
		target = strings.TrimSuffix(*file, filepath.Ext(*file)) + "-分析.xlsx"
	}
	if err := res.File.SaveAs(target); err != nil {
		logger.Fatal("save %s: %v", target, err)
	}
	fmt.Printf("\n已輸出 %d 個產品的分析報表: %s\n", len(res.Tables), target)
}
