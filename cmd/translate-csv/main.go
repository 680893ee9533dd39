package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// translate-csv batch-translates one column of the recipe CSV through an
// external translation endpoint and writes the result as a new column.
// Per-row failures mark the row and continue; the HTTP client retries each
// call a bounded number of times with backoff before giving up on that row.
func main() {
	var (
		in        = flag.String("in", "data/recetas.csv", "input CSV path")
		out       = flag.String("out", "", "output CSV path (default: <in>_translated_<target>.csv)")
		delimiter = flag.String("delimiter", "|", "CSV field delimiter")
		column    = flag.String("column", "nombre", "column to translate")
		source    = flag.String("source", "es", "source language code")
		target    = flag.String("target", "ca", "target language code")
		endpoint  = flag.String("endpoint", "http://localhost:5000/translate", "translation endpoint (LibreTranslate-compatible)")
	)
	flag.Parse()

	if *out == "" {
		base := strings.TrimSuffix(*in, ".csv")
		*out = fmt.Sprintf("%s_translated_%s.csv", base, *target)
	}

	delim := firstRune(*delimiter, '|')

	rows, header, err := readCSV(*in, delim)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	colIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), *column) {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		log.Fatalf("column %q not found; available: %v", *column, header)
	}

	client := resty.New().
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(15 * time.Second).
		SetTimeout(20 * time.Second)

	translator := &translator{client: client, endpoint: *endpoint, source: *source, target: *target}

	newColumn := fmt.Sprintf("%s_%s", *column, *target)
	header = append(header, newColumn)

	translated := 0
	for i := range rows {
		if colIdx >= len(rows[i]) {
			rows[i] = append(rows[i], "")
			continue
		}
		text := rows[i][colIdx]
		result, err := translator.translate(text)
		if err != nil {
			log.Printf("row %d: translate failed, marking and continuing: %v", i+1, err)
			result = "[ERROR_TRADUCCIO] " + text
		} else {
			translated++
		}
		rows[i] = append(rows[i], result)

		if (i+1)%200 == 0 {
			log.Printf("progress: %d/%d rows", i+1, len(rows))
		}
	}

	if err := writeCSV(*out, delim, header, rows); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("translated %d/%d rows into column %q, saved to %s", translated, len(rows), newColumn, *out)
}

func firstRune(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}

type translator struct {
	client   *resty.Client
	endpoint string
	source   string
	target   string
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (t *translator) translate(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var result translateResponse
	resp, err := t.client.R().
		SetBody(map[string]string{
			"q":      text,
			"source": t.source,
			"target": t.target,
			"format": "text",
		}).
		SetResult(&result).
		Post(t.endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("translation endpoint returned %s", resp.Status())
	}
	return result.TranslatedText, nil
}

func readCSV(path string, delimiter rune) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func writeCSV(path string, delimiter rune, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
