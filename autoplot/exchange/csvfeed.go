package exchange

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ezquant/autoplot/autoplot/model"
)

// parseTime accepts unix seconds, RFC3339 or a plain date.
func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time: %q", value)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// hasHeader reports whether the first row is a header, i.e. its first cell is
// not a timestamp.
func hasHeader(rows [][]string) bool {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return false
	}
	_, err := parseTime(rows[0][0])
	return err != nil
}

// LoadCandles reads a candle file with the columns time,open,close,high,low,volume.
// Rows keep the file order.
func LoadCandles(path string) ([]model.Candle, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read candles: %w", err)
	}
	if hasHeader(rows) {
		rows = rows[1:]
	}

	candles := make([]model.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("%s line %d: expected 6 columns, got %d", path, i+1, len(row))
		}

		candle := model.Candle{}
		candle.Time, err = parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}

		values := make([]float64, 5)
		for j := range values {
			values[j], err = strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
			}
		}
		candle.Open, candle.Close, candle.High, candle.Low, candle.Volume =
			values[0], values[1], values[2], values[3], values[4]

		candles = append(candles, candle)
	}

	return candles, nil
}

func optionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") || strings.EqualFold(value, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadTrades reads a trade table. The header names the columns, in any order:
// date, exit_time, size, entry, order_price, exit_price, stop_loss,
// take_profit, profit, status. Only date, size and entry are required; empty,
// "none" and "nan" cells of the optional columns are left unset.
func LoadTrades(path string) ([]model.TradeRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "size", "entry"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}

	cell := func(row []string, name string) string {
		if i, ok := columns[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	trades := make([]model.TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		trade := model.TradeRecord{}

		if trade.EntryTime, err = parseTime(cell(row, "date")); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if exit := strings.TrimSpace(cell(row, "exit_time")); exit != "" {
			exitTime, err := parseTime(exit)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, line, err)
			}
			trade.ExitTime = &exitTime
		}
		if trade.Size, err = strconv.ParseFloat(strings.TrimSpace(cell(row, "size")), 64); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if trade.EntryPrice, err = strconv.ParseFloat(strings.TrimSpace(cell(row, "entry")), 64); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		for name, target := range map[string]**float64{
			"order_price": &trade.OrderPrice,
			"exit_price":  &trade.ExitPrice,
			"stop_loss":   &trade.StopLoss,
			"take_profit": &trade.TakeProfit,
			"profit":      &trade.Profit,
		} {
			if *target, err = optionalFloat(cell(row, name)); err != nil {
				return nil, fmt.Errorf("%s line %d column %s: %w", path, line, name, err)
			}
		}

		if trade.Status, err = model.ParseTradeStatus(cell(row, "status")); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		trades = append(trades, trade)
	}

	return trades, nil
}
